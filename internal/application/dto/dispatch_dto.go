package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DispatchGuideLineRequest cantidad a despachar de un ítem de la nota.
type DispatchGuideLineRequest struct {
	ItemID   string           `json:"itemId" validate:"required,uuid"`
	Quantity int64            `json:"cantidad"`
	Price    *decimal.Decimal `json:"precio"`
}

// DispatchGuideRequest entrada para crear una guía de despacho.
type DispatchGuideRequest struct {
	NoteID string                     `json:"notaId" validate:"required,uuid"`
	Lines  []DispatchGuideLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// DispatchGuideLineResponse línea despachada.
type DispatchGuideLineResponse struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"nombre"`
	Quantity int64           `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
}

// DispatchGuideResponse salida de una guía.
type DispatchGuideResponse struct {
	ID     string                      `json:"_id"`
	NoteID string                      `json:"notaId"`
	Numero int64                       `json:"numero"`
	Date   time.Time                   `json:"fecha"`
	Estado string                      `json:"estado"`
	Lines  []DispatchGuideLineResponse `json:"productos"`
	PDFURL string                      `json:"pdfUrl,omitempty"`
}
