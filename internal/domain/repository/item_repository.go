package repository

import (
	"context"
	"time"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item y sus reservas de stock.
// Los Get devuelven (nil, nil) cuando el ítem no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Item, int, error)
	// Search busca por subcadena sobre la clave normalizada (nombre + código).
	Search(ctx context.Context, key string, limit int) ([]*entity.Item, error)
	// AdjustQuantity suma delta al stock físico sin bajar de cero.
	AdjustQuantity(ctx context.Context, id string, delta int64) error

	AddCommitment(ctx context.Context, c *entity.Commitment) error
	// ReleaseCommitments elimina todas las reservas del documento sobre el ítem.
	ReleaseCommitments(ctx context.Context, itemID, documentID string) (int64, error)
	// SetCommitment reemplaza las reservas del documento sobre el ítem por una de qty (0 = liberar).
	SetCommitment(ctx context.Context, itemID, documentID string, qty int64, until time.Time) error
	// ConsumeCommitment descuenta qty de las reservas del documento sobre el ítem (despacho).
	ConsumeCommitment(ctx context.Context, itemID, documentID string, qty int64) error
	// RescheduleCommitments mueve la vigencia de todas las reservas del documento a until.
	RescheduleCommitments(ctx context.Context, documentID string, until time.Time) error
	// CommitmentsByDocument devuelve lo reservado por el documento, agrupado por ítem.
	CommitmentsByDocument(ctx context.Context, documentID string) (map[string]int64, error)
}
