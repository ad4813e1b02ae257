package purchasing

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye ítems y facturas de compra.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		items repository.ItemRepository,
		invoices repository.PurchaseInvoiceRepository,
	) error) error
}

// SearchInvalidator invalida la caché del buscador de ítems. Puede ser nil.
type SearchInvalidator interface {
	Bump(ctx context.Context) error
}
