package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"gestor-backend/internal/audit"
	"gestor-backend/internal/auth"
	"gestor-backend/internal/billing"
	"gestor-backend/internal/cache"
	"gestor-backend/internal/client"
	"gestor-backend/internal/config"
	"gestor-backend/internal/database"
	"gestor-backend/internal/expense"
	"gestor-backend/internal/finance"
	"gestor-backend/internal/imagehost"
	"gestor-backend/internal/month"
	"gestor-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// .env só para desenvolvimento local; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	cfg := config.Load()
	database.Init(cfg)
	cache.Init(cfg)

	images := imagehost.NewClient(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"message": e.Message,
					"status":  e.Code,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Erro interno no servidor",
				"status":  fiber.StatusInternalServerError,
			})
		},
	})

	// CORS: origins separadas por vírgula
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Tudo abaixo exige token
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Alunos
	protected.Get("/clients", client.ListClientsHandler())
	protected.Get("/clients/status", billing.ClientStatusHandler())
	protected.Get("/clients/:id", client.GetClientHandler())
	protected.Post("/clients", client.CreateClientHandler(cfg, images))
	protected.Put("/clients/:id", client.UpdateClientHandler(cfg, images))
	protected.Delete("/clients/:id", client.DeleteClientHandler(cfg, images))

	// Meses
	protected.Get("/months", month.ListMonthsHandler())
	protected.Get("/months/:id", month.GetMonthHandler())
	protected.Post("/months", month.CreateMonthHandler())

	// Pagamentos
	protected.Get("/payments", payment.ListPaymentsHandler())
	protected.Post("/payments", payment.CreatePaymentHandler())
	protected.Put("/payments", payment.UpdatePaymentHandler())
	protected.Delete("/payments", payment.DeletePaymentHandler())

	// Despesas
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Put("/expenses", expense.UpdateExpenseHandler())
	protected.Delete("/expenses", expense.DeleteExpenseHandler())

	// Dashboard
	protected.Get("/dashboard/summary", finance.DashboardSummaryHandler())
	protected.Get("/dashboard/months", finance.MonthlyBreakdownHandler())

	// Notificações de vencimento
	protected.Get("/notifications", billing.ListNotificationsHandler())
	protected.Put("/notifications/:id/read", billing.MarkNotificationReadHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Worker de cobrança: roda na subida e a cada intervalo configurado
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier := billing.NewNotifier(cfg.BillingInterval)
	go notifier.Run(ctx)

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
