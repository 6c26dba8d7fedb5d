// Package rediscache adapta Redis como cache de lectura del dashboard
// (patrón cache-aside con TTL corto).
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/supermarket-pos/internal/application/reports"
	"github.com/jhoicas/supermarket-pos/pkg/config"
)

var _ reports.CachePort = (*Cache)(nil)

// Cache implementación de reports.CachePort sobre go-redis.
type Cache struct {
	client *redis.Client
}

// New crea el cliente Redis y verifica conectividad.
func New(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// Get devuelve el valor cacheado o (nil, nil) en miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set guarda el valor con el TTL indicado.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *Cache) Close() error {
	return c.client.Close()
}
