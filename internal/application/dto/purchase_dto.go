package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoiceLineRequest producto de una factura de compra.
type PurchaseInvoiceLineRequest struct {
	Name      string          `json:"nombre" validate:"required,max=200"`
	Code      string          `json:"codigo" validate:"omitempty,max=100"`
	Quantity  int64           `json:"cantidad" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Cost      decimal.Decimal `json:"costo"`
}

// PurchaseInvoiceRequest entrada para registrar una factura de compra.
type PurchaseInvoiceRequest struct {
	Supplier       string                       `json:"empresa" validate:"required,max=200"`
	SupplierRUT    string                       `json:"rut" validate:"required,max=20"`
	Role           string                       `json:"rol"`
	Address        string                       `json:"direccion"`
	DocumentType   string                       `json:"tipoDocumento" validate:"required,oneof=factura boleta guia"`
	DocumentNumber string                       `json:"numeroDocumento" validate:"required,max=50"`
	Lines          []PurchaseInvoiceLineRequest `json:"productos" validate:"required,min=1,dive"`
}

// PurchaseInvoiceLineResponse producto comprado.
type PurchaseInvoiceLineResponse struct {
	ItemID    string          `json:"itemId,omitempty"`
	Name      string          `json:"nombre"`
	Code      string          `json:"codigo,omitempty"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Cost      decimal.Decimal `json:"costo"`
}

// PurchaseInvoiceResponse salida de una factura de compra.
type PurchaseInvoiceResponse struct {
	ID             string                        `json:"_id"`
	Supplier       string                        `json:"empresa"`
	SupplierRUT    string                        `json:"rut"`
	Role           string                        `json:"rol"`
	Address        string                        `json:"direccion"`
	DocumentType   string                        `json:"tipoDocumento"`
	DocumentNumber string                        `json:"numeroDocumento"`
	Lines          []PurchaseInvoiceLineResponse `json:"productos"`
	Total          decimal.Decimal               `json:"total"`
	CreatedAt      time.Time                     `json:"fechaCreacion"`
}

// PurchaseInvoiceListRequest filtros: mes "YYYY-MM", página desde 1.
type PurchaseInvoiceListRequest struct {
	Month string `query:"mes" validate:"omitempty,datetime=2006-01"`
	Page  int    `query:"pagina" validate:"min=0"`
	Limit int    `query:"limite" validate:"min=0,max=200"`
}

// PurchaseInvoiceListResponse página de facturas y total.
type PurchaseInvoiceListResponse struct {
	Invoices []PurchaseInvoiceResponse `json:"facturas"`
	Total    int                       `json:"total"`
}
