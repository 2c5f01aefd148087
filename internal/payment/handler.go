package payment

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"gestor-backend/internal/audit"
	"gestor-backend/internal/auth"
	"gestor-backend/internal/database"
	"gestor-backend/internal/finance"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePaymentRequest struct {
	Valor *float64 `json:"valor"`
}

type UpdatePaymentRequest struct {
	IDPagamento uint     `json:"idPagamento"`
	IDClient    uint     `json:"idClient"`
	Valor       *float64 `json:"valor"`
	Data        string   `json:"data"` // "2025-08-01"
}

type PaymentResponse struct {
	ID       uint    `json:"id"`
	ClientID uint    `json:"clientId"`
	Nome     string  `json:"nome,omitempty"`
	MonthID  uint    `json:"mesId"`
	Mes      string  `json:"mes,omitempty"`
	Valor    float64 `json:"valor"`
	Data     string  `json:"data"`
}

func toResponse(p models.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:       p.ID,
		ClientID: p.ClientID,
		MonthID:  p.MonthID,
		Valor:    p.Amount,
		Data:     p.Date.Format("2006-01-02"),
	}
	if p.Client.ID != 0 {
		resp.Nome = p.Client.Name
	}
	if p.Month.ID != 0 {
		resp.Mes = p.Month.Date.Format("2006-01-02")
	}
	return resp
}

// id opcional vindo da query; segundo retorno indica presença.
// Só dígitos: "12abc" é rejeitado, não truncado.
func queryID(c *fiber.Ctx, name, label string) (uint, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false, fiber.NewError(fiber.StatusBadRequest, label+" inválido")
	}
	return uint(id), true, nil
}

// -------------------------------------------------
// GET /api/payments?idMes=&idClient=
// Filtra por mês e/ou aluno, carregando a entidade referenciada
// -------------------------------------------------
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mesID, hasMes, err := queryID(c, "idMes", "ID do mês")
		if err != nil {
			return err
		}
		clientID, hasClient, err := queryID(c, "idClient", "ID de cliente")
		if err != nil {
			return err
		}

		if !hasMes && !hasClient {
			return fiber.NewError(fiber.StatusBadRequest, "Informe idMes e/ou idClient")
		}

		dbq := database.DB.Model(&models.Payment{})

		switch {
		case hasMes && hasClient:
			dbq = dbq.Where("month_id = ? AND client_id = ?", mesID, clientID).Preload("Month")
		case hasMes:
			dbq = dbq.Where("month_id = ?", mesID).Preload("Month")
		default:
			dbq = dbq.Where("client_id = ?", clientID).Preload("Client")
		}

		var payments []models.Payment
		if err := dbq.Order("date asc, id asc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os pagamentos")
		}

		if len(payments) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Nenhum pagamento encontrado")
		}

		resp := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			resp = append(resp, toResponse(p))
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/payments?id=<aluno>&idMes=<mês>  (body: valor)
// -------------------------------------------------
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, hasClient, err := queryID(c, "id", "ID de cliente")
		if err != nil {
			return err
		}
		if !hasClient {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}

		mesID, hasMes, err := queryID(c, "idMes", "ID do mês")
		if err != nil {
			return err
		}
		if !hasMes {
			return fiber.NewError(fiber.StatusBadRequest, "ID do mês inválido")
		}

		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Valor == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Valor inválido")
		}

		// Aluno existe?
		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", clientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Esse cliente não existe")
		}

		// Mês existe?
		var m models.Month
		if err := database.DB.First(&m, "id = ?", mesID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Mês não encontrado")
		}

		p := models.Payment{
			ClientID: clientID,
			MonthID:  mesID,
			Amount:   *body.Valor,
			Date:     time.Now(),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar o pagamento")
		}

		finance.InvalidateDashboard(c.Context(), p.MonthID)
		writeAudit(c, models.AuditActionCreate, p, cl.Name, nil)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": toResponse(p),
			"status":  fiber.StatusCreated,
		})
	}
}

// -------------------------------------------------
// PUT /api/payments (body: idPagamento, idClient, valor, data)
// -------------------------------------------------
func UpdatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.IDClient == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}
		if body.IDPagamento == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de pagamento inválido")
		}

		var p models.Payment
		if err := database.DB.First(&p, "id = ?", body.IDPagamento).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pagamento não encontrado")
		}

		before := p

		if body.Valor != nil {
			p.Amount = *body.Valor
		}
		if body.Data != "" {
			d, err := time.Parse("2006-01-02", body.Data)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use 'YYYY-MM-DD'")
			}
			p.Date = d
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar a requisição")
		}

		finance.InvalidateDashboard(c.Context(), p.MonthID)
		writeAudit(c, models.AuditActionUpdate, p, "", &before)

		return c.JSON(fiber.Map{
			"message": "Pagamento atualizado com sucesso",
			"status":  fiber.StatusOK,
		})
	}
}

// -------------------------------------------------
// DELETE /api/payments?idPagamento=&idClient=
// O pagamento precisa pertencer ao aluno informado
// -------------------------------------------------
func DeletePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID, hasClient, err := queryID(c, "idClient", "ID de cliente")
		if err != nil {
			return err
		}
		if !hasClient {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}

		pagamentoID, hasPagamento, err := queryID(c, "idPagamento", "ID de pagamento")
		if err != nil {
			return err
		}
		if !hasPagamento {
			return fiber.NewError(fiber.StatusBadRequest, "ID de pagamento inválido")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", clientID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Esse cliente não existe")
		}

		var p models.Payment
		if err := database.DB.Where("id = ? AND client_id = ?", pagamentoID, clientID).First(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Esse pagamento não existe")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao deletar o pagamento")
		}

		finance.InvalidateDashboard(c.Context(), p.MonthID)
		writeAudit(c, models.AuditActionDelete, p, cl.Name, &p)

		return c.JSON(fiber.Map{
			"message": "Pagamento deletado com sucesso",
			"status":  fiber.StatusOK,
		})
	}
}

func writeAudit(c *fiber.Ctx, action models.AuditAction, p models.Payment, clientName string, before *models.Payment) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userEmail, _ := c.Locals(auth.CtxUserEmailKey).(string)

	var beforeData any
	if before != nil {
		beforeData = map[string]interface{}{
			"id":    before.ID,
			"valor": before.Amount,
			"data":  before.Date.Format("2006-01-02"),
		}
	}

	desc := fmt.Sprintf("Pagamento %s: R$ %.2f", action, p.Amount)
	if clientName != "" {
		desc = fmt.Sprintf("Pagamento %s: %s - R$ %.2f", action, clientName, p.Amount)
	}

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    userEmail,
		EntityType:  "payment",
		EntityID:    p.ID,
		Action:      action,
		Description: desc,
		Before:      beforeData,
		After: map[string]interface{}{
			"id":        p.ID,
			"client_id": p.ClientID,
			"mes_id":    p.MonthID,
			"valor":     p.Amount,
			"data":      p.Date.Format("2006-01-02"),
		},
	}); err != nil {
		log.Printf("Audit log não gravado: %v", err)
	}
}
