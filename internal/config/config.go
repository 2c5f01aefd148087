package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Redis (cache do dashboard; opcional)
	RedisAddr string

	// Serviço de hospedagem de imagens
	ImageHostUploadURL string
	ImageHostDeleteURL string
	ImageHostAPIKey    string
	PlaceholderImage   string

	// Worker de cobrança
	BillingInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=gestor port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		ImageHostUploadURL: getEnv("IMAGE_HOST_UPLOAD_URL", ""),
		ImageHostDeleteURL: getEnv("IMAGE_HOST_DELETE_URL", ""),
		ImageHostAPIKey:    getEnv("IMAGE_HOST_API_KEY", ""),
		PlaceholderImage:   getEnv("PLACEHOLDER_IMAGE_URL", "/assets/placeholder-aluno.png"),

		BillingInterval: getEnvDuration("BILLING_CHECK_INTERVAL", 30*time.Minute),
	}

	// Checagens de segurança para produção
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Variável JWT_SECRET não definida! Obrigatória para rodar o servidor.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET precisa ter pelo menos 32 caracteres!")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=gestor port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usando valor padrão, defina a sua conexão Postgres em produção.")
	}
	if cfg.ImageHostUploadURL == "" {
		log.Println("[WARN] IMAGE_HOST_UPLOAD_URL não definida, novos alunos ficam com a imagem placeholder.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// aceita também segundos puros
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[WARN] %s inválida (%q), usando padrão %s", key, v, def)
	return def
}
