package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Conflictos del ciclo de vida de cotizaciones. Envuelven ErrConflict, así que
// errors.Is(err, ErrConflict) sigue siendo verdadero.
var (
	ErrAlreadyConverted = fmt.Errorf("%w: la cotización ya fue convertida a nota de venta", ErrConflict)
	ErrAlreadyCancelled = fmt.Errorf("%w: la nota de venta ya está anulada", ErrConflict)
	ErrDraftPromoted    = fmt.Errorf("%w: el borrador ya fue finalizado", ErrConflict)
)

// Invalid construye un error de validación con un mensaje legible.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
