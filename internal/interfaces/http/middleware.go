package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/unrolled/secure"

	"github.com/jhoicas/rasiva-api/internal/infrastructure/cache"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional en POST que crean documentos.
const HeaderIdempotencyKey = "Idempotency-Key"

// RequestLogger registra método, ruta, estado y latencia de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

// SecureHeaders agrega las cabeceras de seguridad estándar.
func SecureHeaders(production bool) fiber.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !production,
	})
	return adaptor.HTTPMiddleware(sm.Handler)
}

// LoginLimiter limita los intentos de login por IP.
func LoginLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 10
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return errorJSON(c, fiber.StatusTooManyRequests, CodeTooManyRequests, "demasiados intentos, espere un minuto")
		},
	})
}

// Idempotency repite la respuesta guardada cuando llega un POST con la misma
// Idempotency-Key del mismo usuario. Sin cabecera o sin Redis no hace nada.
func Idempotency(store *cache.IdempotencyStore, log *logger.Logger) fiber.Handler {
	log = log.Component("idempotency")
	return func(c *fiber.Ctx) error {
		header := c.Get(HeaderIdempotencyKey)
		if header == "" || !store.Enabled() || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		if len(header) > 200 {
			return errorJSON(c, fiber.StatusBadRequest, CodeValidation, "Idempotency-Key demasiado larga")
		}
		key := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + header
		ctx := c.UserContext()

		stored, err := store.Begin(ctx, key)
		if errors.Is(err, cache.ErrIdempotencyInFlight) {
			return errorJSON(c, fiber.StatusConflict, CodeConflict, "ya hay una petición con esta Idempotency-Key en curso")
		}
		if err != nil {
			// Redis caído: se procesa sin protección.
			log.Warn().Err(err).Msg("idempotency no disponible")
			return c.Next()
		}
		if stored != nil {
			c.Set("Idempotent-Replayed", "true")
			c.Set(fiber.HeaderContentType, stored.ContentType)
			return c.Status(stored.Status).Send(stored.Body)
		}

		if err := c.Next(); err != nil {
			abort(store, log, key)
			return err
		}
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			abort(store, log, key)
			return nil
		}
		resp := cache.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, key, resp); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la respuesta")
		}
		return nil
	}
}

func abort(store *cache.IdempotencyStore, log *logger.Logger, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Abort(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar la clave")
	}
}
