package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FindOrCreateItemRequest ingreso de stock: busca por código y luego por nombre; si no existe lo crea.
type FindOrCreateItemRequest struct {
	Name     string          `json:"nombre" validate:"required,max=200"`
	Code     string          `json:"codigo" validate:"omitempty,max=100"`
	Quantity int64           `json:"cantidad" validate:"min=0"`
	Price    decimal.Decimal `json:"precio"`
	Cost     decimal.Decimal `json:"costo"`
	Date     *time.Time      `json:"fecha"`
}

// UpdateItemRequest edición manual de un ítem. Campos nulos no se modifican.
type UpdateItemRequest struct {
	Name     *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Code     *string          `json:"codigo" validate:"omitempty,max=100"`
	Quantity *int64           `json:"cantidad" validate:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"precio"`
	Cost     *decimal.Decimal `json:"costo"`
}

// CommitmentResponse reserva de stock.
type CommitmentResponse struct {
	ID           string    `json:"_id"`
	Quantity     int64     `json:"cantidad"`
	ValidUntil   time.Time `json:"hasta"`
	CotizacionID string    `json:"cotizacionId"`
}

// ItemResponse salida de un ítem con stock comprometido y disponible calculados.
type ItemResponse struct {
	ID            string               `json:"_id"`
	Name          string               `json:"nombre"`
	Code          string               `json:"codigo,omitempty"`
	Quantity      int64                `json:"cantidad"`
	Price         decimal.Decimal      `json:"precio"`
	Cost          decimal.Decimal      `json:"costo"`
	Date          time.Time            `json:"fecha"`
	ModifiedBy    string               `json:"modificadoPor,omitempty"`
	ModifiedAt    time.Time            `json:"modificadoEn"`
	Commitments   []CommitmentResponse `json:"comprometidos"`
	Committed     int64                `json:"comprometido"`
	Available     int64                `json:"disponible"`
	OverCommitted bool                 `json:"sobreComprometido"`
}

// FindOrCreateItemResponse ítem resultante y si fue creado o actualizado.
type FindOrCreateItemResponse struct {
	ItemResponse
	Created bool   `json:"creado"`
	Message string `json:"_mensaje"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemSearchResult resultado liviano del buscador (se guarda en caché).
type ItemSearchResult struct {
	ID    string          `json:"_id"`
	Name  string          `json:"nombre"`
	Code  string          `json:"codigo,omitempty"`
	Price decimal.Decimal `json:"precio"`
}
