package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gestor-backend/internal/config"
	"gestor-backend/internal/database"
	"gestor-backend/internal/imagehost"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPlaceholder = "/assets/placeholder-aluno.png"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "gestor.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("não foi possível abrir o banco de teste: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.Month{}, &models.Payment{}, &models.Notification{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migration de teste falhou: %v", err)
	}
	database.DB = db

	cfg := &config.Config{PlaceholderImage: testPlaceholder}
	images := imagehost.NewClient(cfg) // sem UploadURL: desabilitado

	app := fiber.New()
	app.Get("/api/clients/:id", GetClientHandler())
	app.Post("/api/clients", CreateClientHandler(cfg, images))
	app.Delete("/api/clients/:id", DeleteClientHandler(cfg, images))
	return app
}

func formNome(t *testing.T, nome string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("nome", nome); err != nil {
		t.Fatalf("não foi possível montar o form: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("não foi possível fechar o form: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestCreateClientSemImagemUsaPlaceholder(t *testing.T) {
	app := setupTestApp(t)

	body, contentType := formNome(t, "Maria")
	req := httptest.NewRequest(http.MethodPost, "/api/clients", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST /api/clients: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("POST /api/clients retornou %d, esperava %d", resp.StatusCode, fiber.StatusCreated)
	}

	var created ClientResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("resposta do create inválida: %v", err)
	}
	if created.Image != testPlaceholder {
		t.Errorf("create sem imagem gravou %q, esperava o placeholder %q", created.Image, testPlaceholder)
	}

	// Round-trip: buscar o aluno de volta
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/clients/%d", created.ID), nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET /api/clients/%d: %v", created.ID, err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET /api/clients/%d retornou %d, esperava %d", created.ID, resp.StatusCode, fiber.StatusOK)
	}

	var fetched ClientResponse
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("resposta do get inválida: %v", err)
	}
	if fetched.Nome != "Maria" {
		t.Errorf("get devolveu nome %q, esperava %q", fetched.Nome, "Maria")
	}
	if fetched.Image != testPlaceholder {
		t.Errorf("get devolveu imagem %q, esperava o placeholder %q", fetched.Image, testPlaceholder)
	}
}

func TestDeleteClientInexistenteNaoMudaABase(t *testing.T) {
	app := setupTestApp(t)

	if err := database.DB.Create(&models.Client{Name: "João", ImageURL: testPlaceholder}).Error; err != nil {
		t.Fatalf("não foi possível criar o aluno de teste: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/clients/999", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("DELETE /api/clients/999: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("DELETE de id inexistente retornou %d, esperava %d", resp.StatusCode, fiber.StatusNotFound)
	}

	var count int64
	if err := database.DB.Model(&models.Client{}).Count(&count).Error; err != nil {
		t.Fatalf("não foi possível contar os alunos: %v", err)
	}
	if count != 1 {
		t.Errorf("delete de id inexistente mudou a base: %d alunos, esperava 1", count)
	}
}

func TestGetClientIDNaoNumerico(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/12abc", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET /api/clients/12abc: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("id com lixo no final retornou %d, esperava %d", resp.StatusCode, fiber.StatusBadRequest)
	}
}
