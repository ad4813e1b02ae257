package repository

import "context"

// CounterRepository correlativos atómicos por tipo de documento.
type CounterRepository interface {
	// Next incrementa y devuelve el valor en una sola operación atómica (crea 0→1 si no existe).
	Next(ctx context.Context, key string) (int64, error)
	// Seed crea el contador con floor si no existe; nunca modifica uno existente.
	Seed(ctx context.Context, key string, floor int64) error
}
