package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rasiva-api/internal/domain"
	"github.com/jhoicas/rasiva-api/internal/domain/entity"
	"github.com/jhoicas/rasiva-api/internal/domain/quote"
	"github.com/jhoicas/rasiva-api/internal/domain/repository"
)

// syncCommitments deja las reservas del documento iguales a su demanda: la de sus líneas menos lo
// ya despachado si es una nota finalizada y vigente, ninguna en cualquier otro caso.
// guides puede ser nil para documentos recién creados.
func syncCommitments(
	ctx context.Context,
	items repository.ItemRepository,
	guides repository.DispatchGuideRepository,
	doc *entity.Cotizacion,
	until time.Time,
) error {
	desired := map[string]int64{}
	if doc.HoldsStock() {
		desired = quote.Demand(doc.Lines)
		if guides != nil {
			delivered, err := guides.DeliveredByItem(ctx, doc.ID)
			if err != nil {
				return err
			}
			for id, qty := range delivered {
				if _, ok := desired[id]; ok {
					desired[id] = max(desired[id]-qty, 0)
				}
			}
		}
	}
	return applyDemand(ctx, items, doc.ID, desired, until)
}

// releaseCommitments elimina todas las reservas del documento.
func releaseCommitments(ctx context.Context, items repository.ItemRepository, documentID string) error {
	return applyDemand(ctx, items, documentID, nil, time.Time{})
}

// applyDemand ajusta ítem por ítem lo reservado por el documento. Las filas de ítems se bloquean
// en orden de ID.
func applyDemand(ctx context.Context, items repository.ItemRepository, documentID string, desired map[string]int64, until time.Time) error {
	current, err := items.CommitmentsByDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("commitments of %s: %w", documentID, err)
	}
	for _, adj := range quote.Reconcile(current, desired) {
		it, err := items.GetForUpdate(ctx, adj.ItemID)
		if err != nil {
			return err
		}
		if it == nil {
			if adj.Quantity == 0 {
				continue
			}
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, adj.ItemID)
		}
		if err := items.SetCommitment(ctx, adj.ItemID, documentID, adj.Quantity, until); err != nil {
			return err
		}
	}
	if len(desired) == 0 || until.IsZero() {
		return nil
	}
	// Las reservas sin cambio de cantidad igual siguen la fecha de entrega vigente.
	return items.RescheduleCommitments(ctx, documentID, until)
}

// commitUntil fecha hasta la que se reserva: la de entrega o, si falta, hoy.
func commitUntil(doc *entity.Cotizacion, now time.Time) time.Time {
	if doc.DeliveryDate.IsZero() {
		return truncateDay(now)
	}
	return doc.DeliveryDate
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
