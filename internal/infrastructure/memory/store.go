// Package memory implementa los puertos de persistencia en memoria. Una transacción toma el
// candado global y, si falla, restaura la copia del estado tomada al comenzar.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner  = (*Store)(nil)
	_ quotation.TxRunner  = (*Store)(nil)
	_ purchasing.TxRunner = (*Store)(nil)
	_ dispatch.TxRunner   = (*Store)(nil)
)

type state struct {
	items    map[string]*entity.Item
	docs     map[string]*entity.Cotizacion
	counters map[string]int64
	invoices map[string]*entity.PurchaseInvoice
	guides   map[string]*entity.DispatchGuide
	users    map[string]*entity.User
}

func newState() *state {
	return &state{
		items:    map[string]*entity.Item{},
		docs:     map[string]*entity.Cotizacion{},
		counters: map[string]int64{},
		invoices: map[string]*entity.PurchaseInvoice{},
		guides:   map[string]*entity.DispatchGuide{},
		users:    map[string]*entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = cloneItem(v)
	}
	for k, v := range s.docs {
		c.docs[k] = cloneCotizacion(v)
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = clonePurchaseInvoice(v)
	}
	for k, v := range s.guides {
		c.guides[k] = cloneGuide(v)
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	return c
}

// Store almacén en memoria. Sus repositorios y su TxRunner comparten el mismo estado.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// access ejecuta fn sobre el estado; si locked es falso toma el candado.
func (s *Store) access(locked bool, fn func(st *state) error) error {
	if !locked {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}

// Items, Cotizaciones, Counters, PurchaseInvoices, DispatchGuides y Users devuelven
// repositorios fuera de transacción.
func (s *Store) Items() *ItemRepo                       { return &ItemRepo{s: s} }
func (s *Store) Cotizaciones() *CotizacionRepo          { return &CotizacionRepo{s: s} }
func (s *Store) Counters() *CounterRepo                 { return &CounterRepo{s: s} }
func (s *Store) PurchaseInvoices() *PurchaseInvoiceRepo { return &PurchaseInvoiceRepo{s: s} }
func (s *Store) DispatchGuides() *DispatchGuideRepo     { return &DispatchGuideRepo{s: s} }
func (s *Store) Users() *UserRepo                       { return &UserRepo{s: s} }

func (s *Store) inTx(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Run ejecuta fn con el repositorio de ítems dentro de una transacción.
func (s *Store) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	return s.inTx(ctx, func() error {
		return fn(&ItemRepo{s: s, locked: true})
	})
}

// RunQuotation ejecuta fn con ítems, documentos, guías y correlativos dentro de una transacción.
func (s *Store) RunQuotation(ctx context.Context, fn func(
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	guides repository.DispatchGuideRepository,
	counters repository.CounterRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&ItemRepo{s: s, locked: true}, &CotizacionRepo{s: s, locked: true},
			&DispatchGuideRepo{s: s, locked: true}, &CounterRepo{s: s, locked: true})
	})
}

// RunPurchasing ejecuta fn con ítems y facturas de compra dentro de una transacción.
func (s *Store) RunPurchasing(ctx context.Context, fn func(
	items repository.ItemRepository,
	invoices repository.PurchaseInvoiceRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&ItemRepo{s: s, locked: true}, &PurchaseInvoiceRepo{s: s, locked: true})
	})
}

// RunDispatch ejecuta fn con ítems, documentos, guías y correlativos dentro de una transacción.
func (s *Store) RunDispatch(ctx context.Context, fn func(
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	guides repository.DispatchGuideRepository,
	counters repository.CounterRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&ItemRepo{s: s, locked: true}, &CotizacionRepo{s: s, locked: true},
			&DispatchGuideRepo{s: s, locked: true}, &CounterRepo{s: s, locked: true})
	})
}

func cloneItem(it *entity.Item) *entity.Item {
	c := *it
	c.Commitments = append([]entity.Commitment(nil), it.Commitments...)
	return &c
}

func cloneCotizacion(d *entity.Cotizacion) *entity.Cotizacion {
	c := *d
	c.Lines = append([]entity.CotizacionLine(nil), d.Lines...)
	if d.Numero != nil {
		n := *d.Numero
		c.Numero = &n
	}
	if d.CancelledAt != nil {
		t := *d.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

func clonePurchaseInvoice(inv *entity.PurchaseInvoice) *entity.PurchaseInvoice {
	c := *inv
	c.Lines = append([]entity.PurchaseInvoiceLine(nil), inv.Lines...)
	return &c
}

func cloneGuide(g *entity.DispatchGuide) *entity.DispatchGuide {
	c := *g
	c.Lines = append([]entity.DispatchGuideLine(nil), g.Lines...)
	return &c
}
