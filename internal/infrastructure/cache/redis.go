// Package cache adaptador Redis para el caché de informes.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/pkg/config"
	"github.com/redis/go-redis/v9"
)

var _ inventario.InformeCache = (*RedisCache)(nil)

// RedisCache implementa el puerto InformeCache sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta al Redis configurado y verifica con un ping.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get devuelve el valor cacheado, o (nil, nil) en un miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// Set guarda el valor con el TTL indicado.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete invalida la clave. Borrar una clave inexistente no es error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
