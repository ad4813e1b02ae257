package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo correlativos sobre la tabla contadores.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el repositorio de correlativos.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el valor en una única sentencia.
func (r *CounterRepo) Next(ctx context.Context, key string) (int64, error) {
	var v int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO contadores (nombre, valor) VALUES ($1, 1)
		ON CONFLICT (nombre) DO UPDATE SET valor = contadores.valor + 1
		RETURNING valor`, key).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next counter %s: %w", key, err)
	}
	return v, nil
}

// Seed crea el contador con floor solo si no existe.
func (r *CounterRepo) Seed(ctx context.Context, key string, floor int64) error {
	if floor <= 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO contadores (nombre, valor) VALUES ($1, $2)
		ON CONFLICT (nombre) DO NOTHING`, key, floor)
	if err != nil {
		return fmt.Errorf("seed counter %s: %w", key, err)
	}
	return nil
}
