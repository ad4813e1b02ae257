package memory

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo correlativos en memoria.
type CounterRepo struct {
	s      *Store
	locked bool
}

func (r *CounterRepo) Next(_ context.Context, key string) (int64, error) {
	var v int64
	err := r.s.access(r.locked, func(st *state) error {
		st.counters[key]++
		v = st.counters[key]
		return nil
	})
	return v, err
}

func (r *CounterRepo) Seed(_ context.Context, key string, floor int64) error {
	if floor <= 0 {
		return nil
	}
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.counters[key]; !ok {
			st.counters[key] = floor
		}
		return nil
	})
}
