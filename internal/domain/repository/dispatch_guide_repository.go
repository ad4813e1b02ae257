package repository

import (
	"context"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// DispatchGuideRepository define el puerto de persistencia para guías de despacho.
type DispatchGuideRepository interface {
	Create(ctx context.Context, g *entity.DispatchGuide) error
	GetByID(ctx context.Context, id string) (*entity.DispatchGuide, error)
	ListByNote(ctx context.Context, noteID string) ([]*entity.DispatchGuide, error)
	Delete(ctx context.Context, id string) error
	SetPDFURL(ctx context.Context, id, url string) error
	// DeliveredByItem suma lo ya despachado de una nota, por ítem.
	DeliveredByItem(ctx context.Context, noteID string) (map[string]int64, error)
}
