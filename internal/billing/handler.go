package billing

import (
	"time"

	"gestor-backend/internal/database"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientStatusResponse struct {
	ClientID      uint   `json:"clientId"`
	Nome          string `json:"nome"`
	State         string `json:"state"`
	DueDate       string `json:"vencimento,omitempty"`
	DaysRemaining *int   `json:"diasRestantes,omitempty"`
}

type NotificationResponse struct {
	ID        uint   `json:"id"`
	ClientID  uint   `json:"clientId"`
	Nome      string `json:"nome"`
	State     string `json:"state"`
	Message   string `json:"mensagem"`
	CycleDue  string `json:"vencimento"`
	Read      bool   `json:"lida"`
	CreatedAt string `json:"created_at"`
}

// -------------------------------------------------
// GET /api/clients/status
// Status de vencimento de todos os alunos (fan-out por aluno)
// -------------------------------------------------
func ClientStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		if err := database.DB.Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os alunos")
		}

		statuses, err := EvaluateAll(c.Context(), clients, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível avaliar os vencimentos")
		}

		resp := make([]ClientStatusResponse, 0, len(clients))
		for _, client := range clients {
			st := statuses[client.ID]
			item := ClientStatusResponse{
				ClientID: client.ID,
				Nome:     client.Name,
				State:    string(st.State),
			}
			if st.State != StateNoRecord {
				item.DueDate = st.DueDate.Format("2006-01-02")
				days := st.DaysRemaining
				item.DaysRemaining = &days
			}
			resp = append(resp, item)
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/notifications?unread=true
// -------------------------------------------------
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Notification{}).Preload("Client")

		if c.Query("unread") == "true" {
			dbq = dbq.Where("read_at IS NULL")
		}

		var notifs []models.Notification
		if err := dbq.Order("created_at DESC").Find(&notifs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as notificações")
		}

		resp := make([]NotificationResponse, 0, len(notifs))
		for _, n := range notifs {
			resp = append(resp, NotificationResponse{
				ID:        n.ID,
				ClientID:  n.ClientID,
				Nome:      n.Client.Name,
				State:     string(n.State),
				Message:   n.Message,
				CycleDue:  n.CycleDue.Format("2006-01-02"),
				Read:      n.ReadAt != nil,
				CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/notifications/:id/read
// -------------------------------------------------
func MarkNotificationReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID da notificação inválido")
		}

		var notif models.Notification
		if err := database.DB.First(&notif, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notificação não encontrada")
		}

		if notif.ReadAt == nil {
			now := time.Now()
			notif.ReadAt = &now
			if err := database.DB.Save(&notif).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a notificação")
			}
		}

		return c.JSON(fiber.Map{"message": "Notificação marcada como lida", "id": notif.ID})
	}
}
