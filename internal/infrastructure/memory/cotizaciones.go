package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo documentos en memoria; replica los índices únicos de la base.
type CotizacionRepo struct {
	s      *Store
	locked bool
}

func checkUnique(st *state, c *entity.Cotizacion) error {
	for id, other := range st.docs {
		if id == c.ID {
			continue
		}
		if c.Tipo == entity.TipoNota && c.OriginalID != "" &&
			other.Tipo == entity.TipoNota && other.OriginalID == c.OriginalID {
			return domain.ErrAlreadyConverted
		}
		if c.Numero != nil && other.Numero != nil && other.Tipo == c.Tipo && *other.Numero == *c.Numero {
			return fmt.Errorf("%w: número de documento repetido", domain.ErrDuplicate)
		}
	}
	return nil
}

func annotate(st *state, c *entity.Cotizacion) *entity.Cotizacion {
	out := cloneCotizacion(c)
	out.Converted = false
	for _, other := range st.docs {
		if other.Tipo == entity.TipoNota && other.OriginalID == c.ID {
			out.Converted = true
			break
		}
	}
	return out
}

func (r *CotizacionRepo) Create(_ context.Context, c *entity.Cotizacion) error {
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.docs[c.ID]; ok {
			return fmt.Errorf("%w: id %s", domain.ErrDuplicate, c.ID)
		}
		if err := checkUnique(st, c); err != nil {
			return err
		}
		st.docs[c.ID] = cloneCotizacion(c)
		return nil
	})
}

func (r *CotizacionRepo) GetByID(_ context.Context, id string) (*entity.Cotizacion, error) {
	var out *entity.Cotizacion
	err := r.s.access(r.locked, func(st *state) error {
		if c, ok := st.docs[id]; ok {
			out = annotate(st, c)
		}
		return nil
	})
	return out, err
}

func (r *CotizacionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cotizacion, error) {
	return r.GetByID(ctx, id)
}

func (r *CotizacionRepo) Update(_ context.Context, c *entity.Cotizacion) error {
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.docs[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkUnique(st, c); err != nil {
			return err
		}
		st.docs[c.ID] = cloneCotizacion(c)
		return nil
	})
}

func (r *CotizacionRepo) Delete(_ context.Context, id string) error {
	return r.s.access(r.locked, func(st *state) error {
		if _, ok := st.docs[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.docs, id)
		for gid, g := range st.guides {
			if g.NoteID == id {
				delete(st.guides, gid)
			}
		}
		return nil
	})
}

func (r *CotizacionRepo) List(_ context.Context, f repository.CotizacionFilter) ([]*entity.Cotizacion, error) {
	var list []*entity.Cotizacion
	err := r.s.access(r.locked, func(st *state) error {
		for _, c := range st.docs {
			if f.Tipo != "" && c.Tipo != f.Tipo {
				continue
			}
			if f.Estado != "" && c.Estado != f.Estado {
				continue
			}
			list = append(list, annotate(st, c))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *CotizacionRepo) ExistsByOriginalID(_ context.Context, originalID, tipo string) (bool, error) {
	var exists bool
	err := r.s.access(r.locked, func(st *state) error {
		for _, c := range st.docs {
			if c.OriginalID == originalID && (tipo == "" || c.Tipo == tipo) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *CotizacionRepo) SetPDFURL(_ context.Context, id, url string) error {
	return r.s.access(r.locked, func(st *state) error {
		c, ok := st.docs[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.PDFURL = url
		c.UpdatedAt = time.Now()
		return nil
	})
}

func (r *CotizacionRepo) MarkCancelled(_ context.Context, id string, at time.Time) error {
	return r.s.access(r.locked, func(st *state) error {
		c, ok := st.docs[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.CancelledAt = &at
		c.UpdatedAt = at
		return nil
	})
}
