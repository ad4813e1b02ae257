package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner  = (*TxRunner)(nil)
	_ quotation.TxRunner  = (*TxRunner)(nil)
	_ purchasing.TxRunner = (*TxRunner)(nil)
	_ dispatch.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta fn con el repositorio de ítems atado a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(items repository.ItemRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx))
	})
}

// RunQuotation ejecuta fn con ítems, documentos, guías y correlativos atados a la misma tx.
func (r *TxRunner) RunQuotation(ctx context.Context, fn func(
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	guides repository.DispatchGuideRepository,
	counters repository.CounterRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewCotizacionRepository(tx), NewDispatchGuideRepository(tx), NewCounterRepository(tx))
	})
}

// RunPurchasing ejecuta fn con ítems y facturas de compra atados a la misma tx.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	items repository.ItemRepository,
	invoices repository.PurchaseInvoiceRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewPurchaseInvoiceRepository(tx))
	})
}

// RunDispatch ejecuta fn con ítems, documentos, guías y correlativos atados a la misma tx.
func (r *TxRunner) RunDispatch(ctx context.Context, fn func(
	items repository.ItemRepository,
	docs repository.CotizacionRepository,
	guides repository.DispatchGuideRepository,
	counters repository.CounterRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewCotizacionRepository(tx), NewDispatchGuideRepository(tx), NewCounterRepository(tx))
	})
}
