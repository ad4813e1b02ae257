// Package cache implementa sobre Redis la caché versionada del buscador y el registro de
// idempotencia. Un *SearchCache o *IdempotencyStore nil (o sin cliente) degrada a no-op.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const searchVersionKey = "items:search:version"

// SearchCache caché de resultados del buscador de ítems invalidada por versión global:
// cada ingreso o edición de stock incrementa la versión y las claves viejas expiran solas.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache construye la caché. client puede ser nil.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

func (c *SearchCache) enabled() bool { return c != nil && c.client != nil }

// Version devuelve la versión vigente, inicializándola en 1.
func (c *SearchCache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, searchVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SETNX: dos procesos que arrancan juntos no se pisan la versión.
		if err := c.client.SetNX(ctx, searchVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, searchVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return max(ver, 1), nil
}

// BuildKey compone la clave con la versión vigente.
func (c *SearchCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if !c.enabled() {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON lee el valor cacheado en dest o lo carga con loader y lo guarda.
func (c *SearchCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return json.Unmarshal(payload, dest)
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todas las búsquedas cacheadas.
func (c *SearchCache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, searchVersionKey).Err()
}
