package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s      *Store
	locked bool
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.access(r.locked, func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		c := *u
		st.users[u.ID] = &c
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.access(r.locked, func(st *state) error {
		if u, ok := st.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.access(r.locked, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}
