package client

import (
	"fmt"
	"io"
	"log"
	"strings"

	"gestor-backend/internal/audit"
	"gestor-backend/internal/auth"
	"gestor-backend/internal/config"
	"gestor-backend/internal/database"
	"gestor-backend/internal/imagehost"
	"gestor-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientResponse struct {
	ID        uint   `json:"id"`
	Nome      string `json:"nome"`
	Image     string `json:"image"`
	CreatedAt string `json:"created_at"`
}

func toResponse(cl models.Client) ClientResponse {
	return ClientResponse{
		ID:        cl.ID,
		Nome:      cl.Name,
		Image:     cl.ImageURL,
		CreatedAt: cl.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// lê o arquivo "image" do form; devolve nil quando não enviado
func readImageFile(c *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "", nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("não foi possível abrir a imagem: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("não foi possível ler a imagem: %w", err)
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}

// -------------------------------------------------
// GET /api/clients  e  GET /api/clients/:id
// -------------------------------------------------
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var clients []models.Client
		if err := database.DB.Order("name asc").Find(&clients).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os alunos")
		}

		resp := make([]ClientResponse, 0, len(clients))
		for _, cl := range clients {
			resp = append(resp, toResponse(cl))
		}

		return c.JSON(resp)
	}
}

func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluno não encontrado")
		}

		return c.JSON(toResponse(cl))
	}
}

// -------------------------------------------------
// POST /api/clients (multipart: nome + image opcional)
// Sem imagem o aluno fica com o placeholder configurado
// -------------------------------------------------
func CreateClientHandler(cfg *config.Config, images *imagehost.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		nome := strings.TrimSpace(c.FormValue("nome"))
		if nome == "" {
			return fiber.NewError(fiber.StatusBadRequest, "O campo 'nome' é obrigatório")
		}

		imageURL := cfg.PlaceholderImage

		data, contentType, err := readImageFile(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Imagem inválida")
		}
		if data != nil && images.Enabled() {
			hosted, err := images.Upload(c.Context(), data, contentType)
			if err != nil {
				log.Printf("Upload da imagem falhou: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível enviar a imagem")
			}
			imageURL = hosted
		}

		cl := models.Client{
			Name:     nome,
			ImageURL: imageURL,
		}

		if err := database.DB.Create(&cl).Error; err != nil {
			// Se o upload já aconteceu, a imagem fica órfã no serviço
			// de hospedagem (comportamento do app original)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o aluno")
		}

		writeAudit(c, models.AuditActionCreate, cl, nil)

		return c.Status(fiber.StatusCreated).JSON(toResponse(cl))
	}
}

// -------------------------------------------------
// PUT /api/clients/:id (multipart: nome e/ou image)
// Imagem nova substitui a hospedada; a antiga é removida best-effort
// -------------------------------------------------
func UpdateClientHandler(cfg *config.Config, images *imagehost.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluno não encontrado")
		}

		before := cl

		if nome := strings.TrimSpace(c.FormValue("nome")); nome != "" {
			cl.Name = nome
		}

		data, contentType, err := readImageFile(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Imagem inválida")
		}
		if data != nil && images.Enabled() {
			// Remove a antiga antes de subir a nova (best-effort)
			if cl.ImageURL != "" && cl.ImageURL != cfg.PlaceholderImage {
				if err := images.Destroy(c.Context(), imagehost.PublicIDFromURL(cl.ImageURL)); err != nil {
					log.Printf("Não foi possível remover a imagem antiga do aluno %d: %v", cl.ID, err)
				}
			}

			hosted, err := images.Upload(c.Context(), data, contentType)
			if err != nil {
				log.Printf("Upload da imagem falhou: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível enviar a imagem")
			}
			cl.ImageURL = hosted
		}

		if err := database.DB.Save(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o aluno")
		}

		writeAudit(c, models.AuditActionUpdate, cl, &before)

		return c.JSON(fiber.Map{
			"message": "Aluno atualizado com sucesso",
			"data":    toResponse(cl),
		})
	}
}

// -------------------------------------------------
// DELETE /api/clients/:id
// Remove a imagem hospedada best-effort; pagamentos e notificações
// do aluno caem em cascata
// -------------------------------------------------
func DeleteClientHandler(cfg *config.Config, images *imagehost.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID de cliente inválido")
		}

		var cl models.Client
		if err := database.DB.First(&cl, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluno não encontrado")
		}

		if cl.ImageURL != "" && cl.ImageURL != cfg.PlaceholderImage {
			if err := images.Destroy(c.Context(), imagehost.PublicIDFromURL(cl.ImageURL)); err != nil {
				log.Printf("Não foi possível remover a imagem do aluno %d: %v", cl.ID, err)
			}
		}

		if err := database.DB.Delete(&cl).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível deletar o aluno")
		}

		writeAudit(c, models.AuditActionDelete, cl, &cl)

		return c.JSON(fiber.Map{"message": "Aluno deletado com sucesso"})
	}
}

func writeAudit(c *fiber.Ctx, action models.AuditAction, cl models.Client, before *models.Client) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	userEmail, _ := c.Locals(auth.CtxUserEmailKey).(string)

	var beforeData any
	if before != nil {
		beforeData = map[string]interface{}{
			"id":    before.ID,
			"nome":  before.Name,
			"image": before.ImageURL,
		}
	}

	if err := audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    userEmail,
		EntityType:  "client",
		EntityID:    cl.ID,
		Action:      action,
		Description: fmt.Sprintf("Aluno %s: %s", action, cl.Name),
		Before:      beforeData,
		After: map[string]interface{}{
			"id":    cl.ID,
			"nome":  cl.Name,
			"image": cl.ImageURL,
		},
	}); err != nil {
		// Falha de log não é crítica
		log.Printf("Audit log não gravado: %v", err)
	}
}
