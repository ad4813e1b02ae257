package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// PurchaseInvoiceFilter filtro por mes (From ≤ createdAt < To) y paginación.
type PurchaseInvoiceFilter struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// PurchaseInvoiceRepository define el puerto de persistencia para facturas de compra.
type PurchaseInvoiceRepository interface {
	Create(ctx context.Context, inv *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	List(ctx context.Context, f PurchaseInvoiceFilter) ([]*entity.PurchaseInvoice, int, error)
}
