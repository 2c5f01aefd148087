package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gestor-backend/internal/database"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gestor.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("não foi possível abrir o banco de teste: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Month{}, &models.Payment{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migration de teste falhou: %v", err)
	}
	database.DB = db

	app := fiber.New()
	app.Get("/api/payments", ListPaymentsHandler())
	return app
}

func TestListPaymentsFiltros(t *testing.T) {
	app := setupTestApp(t)

	cl := models.Client{Name: "Maria", ImageURL: "/assets/placeholder-aluno.png"}
	if err := database.DB.Create(&cl).Error; err != nil {
		t.Fatalf("não foi possível criar o aluno de teste: %v", err)
	}
	m := models.Month{Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}
	if err := database.DB.Create(&m).Error; err != nil {
		t.Fatalf("não foi possível criar o mês de teste: %v", err)
	}
	p := models.Payment{ClientID: cl.ID, MonthID: m.ID, Amount: 120, Date: time.Now()}
	if err := database.DB.Create(&p).Error; err != nil {
		t.Fatalf("não foi possível criar o pagamento de teste: %v", err)
	}

	tests := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{
			name:       "sem filtro",
			url:        "/api/payments",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "idMes com lixo no final",
			url:        "/api/payments?idMes=12abc",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "idClient negativo",
			url:        "/api/payments?idClient=-1",
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "mês sem pagamentos",
			url:        "/api/payments?idMes=999",
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "mês com pagamento",
			url:        "/api/payments?idMes=1",
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.url, err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("GET %s retornou %d, esperava %d", tt.url, resp.StatusCode, tt.wantStatus)
			}

			if tt.wantStatus == fiber.StatusOK {
				var got []PaymentResponse
				if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
					t.Fatalf("resposta inválida: %v", err)
				}
				if len(got) != 1 {
					t.Fatalf("lista devolveu %d pagamentos, esperava 1", len(got))
				}
				if got[0].Valor != 120 {
					t.Errorf("valor = %.2f, esperava 120.00", got[0].Valor)
				}
				if got[0].Mes != "2025-08-01" {
					t.Errorf("mes = %q, esperava %q", got[0].Mes, "2025-08-01")
				}
			}
		})
	}
}
