package month

import (
	"time"

	"gestor-backend/internal/database"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMonthRequest struct {
	Data string `json:"data"` // "2025-08-01" ou RFC3339
}

type MonthResponse struct {
	ID   uint   `json:"id"`
	Data string `json:"data"`
}

func parseDate(raw string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// -------------------------------------------------
// GET /api/months  e  GET /api/months/:id
// -------------------------------------------------
func ListMonthsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var months []models.Month
		if err := database.DB.Order("date asc").Find(&months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os meses")
		}

		resp := make([]MonthResponse, 0, len(months))
		for _, m := range months {
			resp = append(resp, MonthResponse{
				ID:   m.ID,
				Data: m.Date.Format("2006-01-02"),
			})
		}

		return c.JSON(resp)
	}
}

func GetMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID do mês inválido")
		}

		var m models.Month
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mês não encontrado")
		}

		return c.JSON(MonthResponse{
			ID:   m.ID,
			Data: m.Date.Format("2006-01-02"),
		})
	}
}

// -------------------------------------------------
// POST /api/months (body: data)
// A data é normalizada para o dia 1 do mês. Mês não tem update nem delete.
// -------------------------------------------------
func CreateMonthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMonthRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Data == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O campo 'data' é obrigatório")
		}

		d, err := parseDate(body.Data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Data inválida, use 'YYYY-MM-DD'")
		}

		m := models.Month{
			Date: FirstOfMonth(d),
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o mês")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Mês criado com sucesso",
			"data": MonthResponse{
				ID:   m.ID,
				Data: m.Date.Format("2006-01-02"),
			},
		})
	}
}

// FirstOfMonth normaliza qualquer data para o dia 1 às 00:00 UTC
func FirstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
