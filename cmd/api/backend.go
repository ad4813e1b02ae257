package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/rasiva-api/internal/application/dispatch"
	"github.com/jhoicas/rasiva-api/internal/application/inventory"
	"github.com/jhoicas/rasiva-api/internal/application/purchasing"
	"github.com/jhoicas/rasiva-api/internal/application/quotation"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/memory"
	"github.com/jhoicas/rasiva-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rasiva-api/pkg/config"
	"github.com/jhoicas/rasiva-api/pkg/logger"
)

// txRunner lo implementan tanto postgres.TxRunner como memory.Store.
type txRunner interface {
	inventory.TxRunner
	quotation.TxRunner
	purchasing.TxRunner
	dispatch.TxRunner
}

// backend repositorios de un driver de almacenamiento.
type backend struct {
	tx       txRunner
	items    repository.ItemRepository
	docs     repository.CotizacionRepository
	counters repository.CounterRepository
	invoices repository.PurchaseInvoiceRepository
	guides   repository.DispatchGuideRepository
	users    repository.UserRepository
	close    func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.UsesMemory() {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &backend{
			tx:       store,
			items:    store.Items(),
			docs:     store.Cotizaciones(),
			counters: store.Counters(),
			invoices: store.PurchaseInvoices(),
			guides:   store.DispatchGuides(),
			users:    store.Users(),
			close:    func() {},
		}, nil
	}

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		return nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		tx:       postgres.NewTxRunner(pool),
		items:    postgres.NewItemRepository(pool),
		docs:     postgres.NewCotizacionRepository(pool),
		counters: postgres.NewCounterRepository(pool),
		invoices: postgres.NewPurchaseInvoiceRepository(pool),
		guides:   postgres.NewDispatchGuideRepository(pool),
		users:    postgres.NewUserRepository(pool),
		close:    pool.Close,
	}, nil
}

// seedCounters aplica los pisos iniciales de los correlativos. Nunca rebaja uno existente.
func seedCounters(ctx context.Context, counters repository.CounterRepository, n config.NumberingConfig) error {
	floors := map[string]int64{
		entity.CounterNota:       n.NotaFloor,
		entity.CounterCotizacion: n.CotizacionFloor,
	}
	for key, floor := range floors {
		if err := counters.Seed(ctx, key, floor); err != nil {
			return fmt.Errorf("sembrar contador %s: %w", key, err)
		}
	}
	return nil
}
