package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del inventario.
// Quantity es el stock físico; las reservas (Commitments) nunca lo descuentan.
type Item struct {
	ID          string
	Name        string
	Code        string // opcional; único cuando viene informado
	SearchKey   string // nombre + código normalizados (minúsculas, sin tildes)
	Quantity    int64
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario de compra
	ReceivedAt  time.Time       // fecha de la última recepción
	ModifiedBy  string
	ModifiedAt  time.Time
	Commitments []Commitment
}

// Commitment reserva stock de un Item para un documento hasta una fecha.
type Commitment struct {
	ID         string
	ItemID     string
	DocumentID string
	Quantity   int64
	ValidUntil time.Time
	CreatedAt  time.Time
}

// Committed suma las cantidades reservadas del ítem.
func (i *Item) Committed() int64 {
	var total int64
	for _, c := range i.Commitments {
		total += c.Quantity
	}
	return total
}

// Available devuelve stock físico menos reservas. Puede ser negativo:
// sobrecomprometer está permitido y solo se informa como advertencia.
func (i *Item) Available() int64 {
	return i.Quantity - i.Committed()
}

// CommittedFor suma lo reservado por un documento específico.
func (i *Item) CommittedFor(documentID string) int64 {
	var total int64
	for _, c := range i.Commitments {
		if c.DocumentID == documentID {
			total += c.Quantity
		}
	}
	return total
}
