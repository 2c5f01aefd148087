package finance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gestor-backend/internal/cache"
	"gestor-backend/internal/database"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	cacheKeyGlobal = "dashboard:geral"
	cacheTTL       = 5 * time.Minute
)

func cacheKeyMonth(monthID uint) string {
	return fmt.Sprintf("dashboard:mes:%d", monthID)
}

// InvalidateDashboard derruba o cache do resumo depois de uma escrita de
// pagamento ou despesa
func InvalidateDashboard(ctx context.Context, monthID uint) {
	cache.Del(ctx, cacheKeyGlobal, cacheKeyMonth(monthID))
}

type SummaryResponse struct {
	MesID *uint `json:"mesId,omitempty"`
	Summary
}

// -------------------------------------------------
// GET /api/dashboard/summary?idMes=3
// Sem idMes devolve o resumo global de todos os registros
// -------------------------------------------------
func DashboardSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()

		idMesStr := c.Query("idMes")
		if idMesStr == "" {
			return globalSummary(c, ctx)
		}

		mes, err := strconv.Atoi(idMesStr)
		if err != nil || mes <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID do mês inválido")
		}
		monthID := uint(mes)

		// Tenta o cache primeiro
		if cached := cache.Get(ctx, cacheKeyMonth(monthID)); cached != "" {
			var resp SummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return c.JSON(resp)
			}
		}

		var month models.Month
		if err := database.DB.First(&month, "id = ?", monthID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mês não encontrado")
		}

		var payments []models.Payment
		if err := database.DB.Where("month_id = ?", monthID).Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar os pagamentos")
		}

		var expenses []models.Expense
		if err := database.DB.Where("month_id = ?", monthID).Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar as despesas")
		}

		resp := SummaryResponse{
			MesID:   &month.ID,
			Summary: Aggregate(payments, expenses),
		}

		if data, err := json.Marshal(resp); err == nil {
			cache.SetEx(ctx, cacheKeyMonth(monthID), string(data), cacheTTL)
		}

		return c.JSON(resp)
	}
}

type MonthSummaryItem struct {
	MesID uint   `json:"mesId"`
	Data  string `json:"data"`
	Summary
}

// -------------------------------------------------
// GET /api/dashboard/months
// Resumo de cada mês cadastrado, como os cards da tela inicial
// -------------------------------------------------
func MonthlyBreakdownHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var months []models.Month
		if err := database.DB.Order("date asc").Find(&months).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os meses")
		}

		var payments []models.Payment
		if err := database.DB.Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar os pagamentos")
		}

		var expenses []models.Expense
		if err := database.DB.Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar as despesas")
		}

		paymentsByMonth := make(map[uint][]models.Payment)
		for _, p := range payments {
			paymentsByMonth[p.MonthID] = append(paymentsByMonth[p.MonthID], p)
		}

		expensesByMonth := make(map[uint][]models.Expense)
		for _, e := range expenses {
			expensesByMonth[e.MonthID] = append(expensesByMonth[e.MonthID], e)
		}

		resp := make([]MonthSummaryItem, 0, len(months))
		for _, m := range months {
			resp = append(resp, MonthSummaryItem{
				MesID:   m.ID,
				Data:    m.Date.Format("2006-01-02"),
				Summary: Aggregate(paymentsByMonth[m.ID], expensesByMonth[m.ID]),
			})
		}

		return c.JSON(resp)
	}
}

func globalSummary(c *fiber.Ctx, ctx context.Context) error {
	if cached := cache.Get(ctx, cacheKeyGlobal); cached != "" {
		var resp SummaryResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return c.JSON(resp)
		}
	}

	var payments []models.Payment
	if err := database.DB.Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar os pagamentos")
	}

	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar as despesas")
	}

	resp := SummaryResponse{Summary: Aggregate(payments, expenses)}

	if data, err := json.Marshal(resp); err == nil {
		cache.SetEx(ctx, cacheKeyGlobal, string(data), cacheTTL)
	}

	return c.JSON(resp)
}
