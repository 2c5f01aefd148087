package expense

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"gestor-backend/internal/audit"
	"gestor-backend/internal/auth"
	"gestor-backend/internal/database"
	"gestor-backend/internal/finance"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	TipoGasto string   `json:"tipoGasto"`
	Valor     *float64 `json:"valor"`
	Descricao string   `json:"descricao"`
}

type UpdateExpenseRequest struct {
	TipoGasto *string  `json:"tipoGasto"`
	Valor     *float64 `json:"valor"`
	Descricao *string  `json:"descricao"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	MonthID     uint    `json:"mesId"`
	Mes         string  `json:"mes,omitempty"`
	TipoGasto   string  `json:"tipoGasto"`
	Valor       float64 `json:"valor"`
	Descricao   string  `json:"descricao"`
	DataCriacao string  `json:"dataCriacao"`
}

func toResponse(e models.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID,
		MonthID:     e.MonthID,
		TipoGasto:   string(e.Category),
		Valor:       e.Amount,
		Descricao:   e.Description,
		DataCriacao: e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.Month.ID != 0 {
		resp.Mes = e.Month.Date.Format("2006-01-02")
	}
	return resp
}

// ValidateCreate confere os campos obrigatórios da despesa.
// Retorna a mensagem de erro ("" quando válida).
func ValidateCreate(body CreateExpenseRequest) string {
	if strings.TrimSpace(body.TipoGasto) == "" || body.Valor == nil || strings.TrimSpace(body.Descricao) == "" {
		return "Todos os campos são obrigatórios"
	}
	if !models.ValidCategory(models.ExpenseCategory(body.TipoGasto)) {
		return "Tipo de gasto inválido"
	}
	if *body.Valor <= 0 {
		return "O valor deve ser maior que zero"
	}
	return ""
}

// -------------------------------------------------
// GET /api/expenses?idMes=
// Sem idMes devolve todas as despesas
// -------------------------------------------------
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{}).Preload("Month")

		if idMesStr := c.Query("idMes"); idMesStr != "" {
			mesID, err := strconv.Atoi(idMesStr)
			if err != nil || mesID <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "ID do mês inválido")
			}
			dbq = dbq.Where("month_id = ?", mesID)
		}

		var expenses []models.Expense
		if err := dbq.Order("created_at asc, id asc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar a requisição")
		}

		if len(expenses) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Nenhuma despesa encontrada")
		}

		resp := make([]ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			resp = append(resp, toResponse(e))
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// POST /api/expenses?idMes=  (body: tipoGasto, valor, descricao)
// -------------------------------------------------
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mesID, err := strconv.Atoi(c.Query("idMes"))
		if err != nil || mesID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID do mês inválido")
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if msg := ValidateCreate(body); msg != "" {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		// Mês existe?
		var m models.Month
		if err := database.DB.First(&m, "id = ?", mesID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Mês não encontrado")
		}

		e := models.Expense{
			MonthID:     uint(mesID),
			Category:    models.ExpenseCategory(body.TipoGasto),
			Description: strings.TrimSpace(body.Descricao),
			Amount:      *body.Valor,
		}

		if err := database.DB.Create(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao criar despesa")
		}

		finance.InvalidateDashboard(c.Context(), e.MonthID)
		writeAudit(c, models.AuditActionCreate, e, nil)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": toResponse(e),
			"status":  fiber.StatusCreated,
		})
	}
}

// -------------------------------------------------
// PUT /api/expenses?idDespesa=  (atualiza só os campos enviados)
// -------------------------------------------------
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		despesaID, err := strconv.Atoi(c.Query("idDespesa"))
		if err != nil || despesaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID da despesa inválido")
		}

		var e models.Expense
		if err := database.DB.First(&e, "id = ?", despesaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		before := e

		if body.TipoGasto != nil {
			if !models.ValidCategory(models.ExpenseCategory(*body.TipoGasto)) {
				return fiber.NewError(fiber.StatusBadRequest, "Tipo de gasto inválido")
			}
			e.Category = models.ExpenseCategory(*body.TipoGasto)
		}
		if body.Valor != nil {
			if *body.Valor <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "O valor deve ser maior que zero")
			}
			e.Amount = *body.Valor
		}
		if body.Descricao != nil {
			desc := strings.TrimSpace(*body.Descricao)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "A descrição não pode ser vazia")
			}
			e.Description = desc
		}

		if err := database.DB.Save(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao atualizar a despesa")
		}

		finance.InvalidateDashboard(c.Context(), e.MonthID)
		writeAudit(c, models.AuditActionUpdate, e, &before)

		return c.JSON(fiber.Map{
			"message": "Despesa atualizada com sucesso",
			"data":    toResponse(e),
		})
	}
}

// -------------------------------------------------
// DELETE /api/expenses?idDespesa=
// -------------------------------------------------
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		despesaID, err := strconv.Atoi(c.Query("idDespesa"))
		if err != nil || despesaID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID da despesa inválido")
		}

		var e models.Expense
		if err := database.DB.First(&e, "id = ?", despesaID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Despesa não encontrada")
		}

		if err := database.DB.Delete(&e).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao deletar a despesa")
		}

		finance.InvalidateDashboard(c.Context(), e.MonthID)
		writeAudit(c, models.AuditActionDelete, e, &e)

		return c.JSON(fiber.Map{
			"message": "Despesa deletada com sucesso",
			"status":  fiber.StatusOK,
		})
	}
}

func writeAudit(c *fiber.Ctx, action models.AuditAction, e models.Expense, before *models.Expense) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userEmail, _ := c.Locals(auth.CtxUserEmailKey).(string)

	var beforeData any
	if before != nil {
		beforeData = map[string]interface{}{
			"id":        before.ID,
			"tipoGasto": before.Category,
			"valor":     before.Amount,
			"descricao": before.Description,
		}
	}

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    userEmail,
		EntityType:  "expense",
		EntityID:    e.ID,
		Action:      action,
		Description: fmt.Sprintf("Despesa %s: %s - R$ %.2f", action, e.Category, e.Amount),
		Before:      beforeData,
		After: map[string]interface{}{
			"id":        e.ID,
			"mes_id":    e.MonthID,
			"tipoGasto": e.Category,
			"valor":     e.Amount,
			"descricao": e.Description,
		},
	}); err != nil {
		log.Printf("Audit log não gravado: %v", err)
	}
}
