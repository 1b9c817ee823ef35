package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
)

var _ ledger.FeedCache = (*FeedCache)(nil)

// DefaultPrefix prefijo de las claves de los feeds de inventario.
const DefaultPrefix = "inventory:feeds"

// NewClient crea un cliente Redis y verifica la conexión con un ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// FeedCache caché versionada de los feeds (stock bajo, resumen de valor, estadísticas).
// Invalidate incrementa la versión: las claves anteriores quedan huérfanas y expiran por TTL.
type FeedCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewFeedCache construye la caché. prefix vacío usa DefaultPrefix.
func NewFeedCache(client redis.UniversalClient, prefix string, ttl time.Duration) *FeedCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &FeedCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *FeedCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *FeedCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}
	return ver, nil
}

func (c *FeedCache) buildKey(key string, ver int64) string {
	return fmt.Sprintf("%s:v%d:%s", c.prefix, ver, key)
}

// Load decodifica en dst el valor cacheado y devuelve la versión leída, que debe pasarse a Store
// para que un resultado calculado antes de una invalidación no quede visible en la versión nueva.
func (c *FeedCache) Load(ctx context.Context, key string, dst any) (int64, bool, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return 0, false, err
	}
	payload, err := c.client.Get(ctx, c.buildKey(key, ver)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ver, false, nil
	}
	if err != nil {
		return ver, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return ver, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return ver, true, nil
}

// Store guarda value como JSON con el TTL configurado bajo la versión observada en Load.
// Si la versión ya fue invalidada la clave queda huérfana y expira por TTL.
func (c *FeedCache) Store(ctx context.Context, key string, ver int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.buildKey(key, ver), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate descarta todos los feeds cacheados.
func (c *FeedCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
