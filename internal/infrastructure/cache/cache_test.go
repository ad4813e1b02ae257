package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// ──────────────────────────────────────────────────────────────────────────────
// SearchCache
// ──────────────────────────────────────────────────────────────────────────────

func TestSearchCache_CacheaHastaElBump(t *testing.T) {
	_, client := newRedis(t)
	c := NewSearchCache(client, time.Minute)
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return []string{"cemento"}, nil
	}

	key, err := c.BuildKey(ctx, "items", "search", "cem")
	require.NoError(t, err)
	assert.Equal(t, "items:search:cem:1", key)

	var got []string
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
	assert.Equal(t, []string{"cemento"}, got)
	assert.Equal(t, 1, calls, "la segunda lectura sale de Redis")

	require.NoError(t, c.Bump(ctx))
	key2, err := c.BuildKey(ctx, "items", "search", "cem")
	require.NoError(t, err)
	assert.Equal(t, "items:search:cem:2", key2)
	require.NoError(t, c.FetchJSON(ctx, key2, &got, loader))
	assert.Equal(t, 2, calls, "tras el bump se vuelve a cargar")
}

func TestSearchCache_TTL(t *testing.T) {
	mr, client := newRedis(t)
	c := NewSearchCache(client, time.Minute)
	ctx := context.Background()

	var got int
	require.NoError(t, c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) { return 7, nil }))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("k"))
}

func TestSearchCache_NilEsNoOp(t *testing.T) {
	var c *SearchCache
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "items", "search", "x")
	require.NoError(t, err)
	assert.Equal(t, "items:search:x", key)
	assert.NoError(t, c.Bump(ctx))

	var got string
	require.NoError(t, c.FetchJSON(ctx, key, &got, func(context.Context) (any, error) { return "directo", nil }))
	assert.Equal(t, "directo", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// IdempotencyStore
// ──────────────────────────────────────────────────────────────────────────────

func TestIdempotency_PrimeraPeticionProcesaYLaSegundaRepite(t *testing.T) {
	_, client := newRedis(t)
	s := NewIdempotencyStore(client, 24*time.Hour)
	ctx := context.Background()

	stored, err := s.Begin(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, stored, "la primera petición debe procesarse")

	_, err = s.Begin(ctx, "abc")
	assert.ErrorIs(t, err, ErrIdempotencyInFlight, "duplicado concurrente")

	require.NoError(t, s.Complete(ctx, "abc", StoredResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"ok":true}`)}))
	stored, err = s.Begin(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 201, stored.Status)
	assert.JSONEq(t, `{"ok":true}`, string(stored.Body))
}

func TestIdempotency_AbortLiberaLaClave(t *testing.T) {
	mr, client := newRedis(t)
	s := NewIdempotencyStore(client, time.Hour)
	ctx := context.Background()

	_, err := s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("idem:k1"))
	require.NoError(t, s.Abort(ctx, "k1"))

	stored, err := s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestIdempotency_SinRedisSiempreProcesa(t *testing.T) {
	s := NewIdempotencyStore(nil, time.Hour)
	assert.False(t, s.Enabled())
	stored, err := s.Begin(context.Background(), "k")
	assert.NoError(t, err)
	assert.Nil(t, stored)
}
