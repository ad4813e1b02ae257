package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo facturas de compra en memoria.
type PurchaseInvoiceRepo struct {
	s      *Store
	locked bool
}

func (r *PurchaseInvoiceRepo) Create(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.s.access(r.locked, func(st *state) error {
		st.invoices[inv.ID] = clonePurchaseInvoice(inv)
		return nil
	})
}

func (r *PurchaseInvoiceRepo) GetByID(_ context.Context, id string) (*entity.PurchaseInvoice, error) {
	var out *entity.PurchaseInvoice
	err := r.s.access(r.locked, func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = clonePurchaseInvoice(inv)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseInvoiceRepo) List(_ context.Context, f repository.PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, int, error) {
	var all []*entity.PurchaseInvoice
	err := r.s.access(r.locked, func(st *state) error {
		for _, inv := range st.invoices {
			if !f.From.IsZero() && (inv.CreatedAt.Before(f.From) || !inv.CreatedAt.Before(f.To)) {
				continue
			}
			all = append(all, clonePurchaseInvoice(inv))
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return paginate(all, f.Limit, f.Offset), len(all), err
}
