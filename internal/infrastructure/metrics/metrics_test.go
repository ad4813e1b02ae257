package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CuentaPorPatronDeRuta(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/items/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/items/:id", "GET", "204")))
}

func TestLifecycleEvent(t *testing.T) {
	m := New()
	m.LifecycleEvent("convert", "ok")
	m.LifecycleEvent("convert", "conflict")
	m.LifecycleEvent("convert", "conflict")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lifecycle.WithLabelValues("convert", "conflict")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.LifecycleEvent("convert", "ok") })
}

func TestHandler_ExponeTexto(t *testing.T) {
	m := New()
	m.LifecycleEvent("cancel", "ok")
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `rasiva_document_lifecycle_total{op="cancel",result="ok"} 1`))
}
