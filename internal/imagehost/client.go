package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"

	"gestor-backend/internal/config"
)

// Client conversa com o serviço de hospedagem de imagens dos alunos.
// Quando UploadURL está vazio o cliente fica desabilitado e os alunos
// recebem a imagem placeholder.
type Client struct {
	uploadURL string
	deleteURL string
	apiKey    string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		uploadURL: cfg.ImageHostUploadURL,
		deleteURL: cfg.ImageHostDeleteURL,
		apiKey:    cfg.ImageHostAPIKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.uploadURL != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload envia a imagem e devolve a URL hospedada
func (c *Client) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("serviço de imagens não configurado")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("não foi possível montar o multipart: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("não foi possível escrever a imagem: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("não foi possível fechar o multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("não foi possível criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload retornou %d: %s", resp.StatusCode, string(body))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("resposta do upload inválida: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("resposta do upload sem secure_url")
	}

	return out.SecureURL, nil
}

// Destroy remove a imagem hospedada. Best-effort: quem chama decide se
// o erro interrompe a operação (normalmente não interrompe).
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if c.deleteURL == "" || publicID == "" {
		return nil
	}

	form := url.Values{}
	form.Set("public_id", publicID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.deleteURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("não foi possível criar a requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete falhou: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete retornou %d", resp.StatusCode)
	}

	return nil
}

// PublicIDFromURL extrai o id público da URL hospedada: último segmento
// do path, cortado no primeiro ponto (regra do app original)
func PublicIDFromURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	last := path.Base(imageURL)
	if last == "." || last == "/" {
		return ""
	}
	if idx := strings.Index(last, "."); idx > 0 {
		last = last[:idx]
	}
	return last
}
