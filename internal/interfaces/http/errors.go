package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rasiva-api/internal/application/dto"
	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeValidation      = "VALIDATION"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// writeError traduce errores de dominio a HTTP. Los 500 se registran con la causa y
// responden un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, CodeValidation, publicMessage(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, publicMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, CodeUnauthorized, "no autorizado")
	case errors.Is(err, domain.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "acceso denegado")
	}
	if log != nil {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno del servidor")
}

// publicMessage quita el prefijo del sentinel ("entrada inválida: cantidad..." -> "cantidad...").
func publicMessage(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

// ErrorHandler manejador de errores de Fiber: errores no capturados por los handlers
// (404 de rutas, body demasiado grande, panics recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
				code = CodeValidation
			case fiber.StatusTooManyRequests:
				code = CodeTooManyRequests
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			return errorJSON(c, fe.Code, code, fe.Message)
		}
		return writeError(c, log, err)
	}
}
