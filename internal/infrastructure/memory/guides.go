package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.DispatchGuideRepository = (*DispatchGuideRepo)(nil)

// DispatchGuideRepo guías de despacho en memoria.
type DispatchGuideRepo struct {
	s      *Store
	locked bool
}

func (r *DispatchGuideRepo) Create(_ context.Context, g *entity.DispatchGuide) error {
	return r.s.access(r.locked, func(st *state) error {
		for _, other := range st.guides {
			if other.Numero == g.Numero {
				return fmt.Errorf("%w: número de guía repetido", domain.ErrDuplicate)
			}
		}
		st.guides[g.ID] = cloneGuide(g)
		return nil
	})
}

func (r *DispatchGuideRepo) GetByID(_ context.Context, id string) (*entity.DispatchGuide, error) {
	var out *entity.DispatchGuide
	err := r.s.access(r.locked, func(st *state) error {
		if g, ok := st.guides[id]; ok {
			out = cloneGuide(g)
		}
		return nil
	})
	return out, err
}

func (r *DispatchGuideRepo) ListByNote(_ context.Context, noteID string) ([]*entity.DispatchGuide, error) {
	var list []*entity.DispatchGuide
	err := r.s.access(r.locked, func(st *state) error {
		for _, g := range st.guides {
			if g.NoteID == noteID {
				list = append(list, cloneGuide(g))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Numero < list[j].Numero })
	return list, err
}

func (r *DispatchGuideRepo) Delete(_ context.Context, id string) error {
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.guides[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.guides, id)
		return nil
	})
}

func (r *DispatchGuideRepo) SetPDFURL(_ context.Context, id, url string) error {
	return r.s.access(r.locked, func(st *state) error {
		if g, ok := st.guides[id]; ok {
			g.PDFURL = url
		}
		return nil
	})
}

func (r *DispatchGuideRepo) DeliveredByItem(_ context.Context, noteID string) (map[string]int64, error) {
	out := make(map[string]int64)
	err := r.s.access(r.locked, func(st *state) error {
		for _, g := range st.guides {
			if g.NoteID != noteID {
				continue
			}
			for _, l := range g.Lines {
				out[l.ItemID] += l.Quantity
			}
		}
		return nil
	})
	return out, err
}
