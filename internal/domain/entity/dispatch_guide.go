package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una guía de despacho.
const (
	GuideEstadoPendiente  = "pendiente"
	GuideEstadoCompletada = "completada"
)

// DispatchGuide guía de despacho: entrega (parcial o total) de una nota de venta.
type DispatchGuide struct {
	ID        string
	NoteID    string
	Numero    int64
	Date      time.Time
	Estado    string
	Lines     []DispatchGuideLine
	PDFURL    string
	CreatedBy string
	CreatedAt time.Time
}

// DispatchGuideLine cantidad entregada de un ítem.
type DispatchGuideLine struct {
	ItemID   string
	Name     string
	Quantity int64
	Price    decimal.Decimal
}
