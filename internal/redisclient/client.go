package redisclient

import (
	"context"
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/stockpilot/inventory-api/internal/config"
)

// New connects to Redis. When Redis is unreachable the server still comes
// up — logout revocation is simply disabled — so a nil client is returned
// instead of failing startup.
func New(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v (token revocation disabled)", cfg.RedisAddr, err)
		return nil
	}

	return client
}
