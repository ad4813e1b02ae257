package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "idem:"
	pendingMarker     = "pending"
)

// ErrIdempotencyInFlight otra petición con la misma clave todavía se está procesando.
var ErrIdempotencyInFlight = errors.New("petición con la misma Idempotency-Key en curso")

// StoredResponse respuesta guardada para repetir ante reintentos.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore registra claves de idempotencia en Redis con TTL.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el store. client puede ser nil.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Enabled indica si hay Redis detrás.
func (s *IdempotencyStore) Enabled() bool { return s != nil && s.client != nil }

// Begin reserva la clave. Si ya existe una respuesta completa la devuelve; si está en curso
// devuelve ErrIdempotencyInFlight. (nil, nil) significa que el llamador debe procesar la petición.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (*StoredResponse, error) {
	if !s.Enabled() {
		return nil, nil
	}
	k := idempotencyPrefix + key
	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expiró entre SETNX y GET: se trata como en curso, el cliente reintenta.
		return nil, ErrIdempotencyInFlight
	}
	if err != nil {
		return nil, err
	}
	if string(raw) == pendingMarker {
		return nil, ErrIdempotencyInFlight
	}
	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Complete guarda la respuesta final de la clave.
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	if !s.Enabled() {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idempotencyPrefix+key, raw, s.ttl).Err()
}

// Abort libera la clave para que un reintento vuelva a procesarse.
func (s *IdempotencyStore) Abort(ctx context.Context, key string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}
