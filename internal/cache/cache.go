package cache

import (
	"context"
	"log"
	"time"

	"gestor-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client fica nil quando o Redis não está configurado ou não responde;
// nesse caso o serviço segue sem cache.
var Client *redis.Client

func Init(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR não definido, dashboard sem cache")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis indisponível (%v), seguindo sem cache", err)
		Client = nil
	}
}

// Get devolve o valor da chave ou "" quando ausente/sem cache
func Get(ctx context.Context, key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

func SetEx(ctx context.Context, key, value string, ttl time.Duration) {
	if Client == nil {
		return
	}
	Client.SetEx(ctx, key, value, ttl)
}

func Del(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	Client.Del(ctx, keys...)
}
