package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de compra.
const (
	PurchaseDocFactura = "factura"
	PurchaseDocBoleta  = "boleta"
	PurchaseDocGuia    = "guia"
)

// PurchaseInvoice factura (o boleta/guía) de compra a un proveedor. Al registrarla
// se ingresan sus productos al inventario.
type PurchaseInvoice struct {
	ID             string
	Supplier       string // empresa
	SupplierRUT    string
	Role           string // rol
	Address        string
	DocumentType   string
	DocumentNumber string
	Lines          []PurchaseInvoiceLine
	Total          decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
}

// PurchaseInvoiceLine producto comprado.
type PurchaseInvoiceLine struct {
	ItemID    string
	Name      string
	Code      string
	Quantity  int64
	UnitPrice decimal.Decimal // precio de venta informado
	Cost      decimal.Decimal // costo unitario de compra
}

// LineTotal costo total de la línea (o precio si no se informó costo).
func (l PurchaseInvoiceLine) LineTotal() decimal.Decimal {
	unit := l.Cost
	if unit.IsZero() {
		unit = l.UnitPrice
	}
	return unit.Mul(decimal.NewFromInt(l.Quantity))
}

// ValidPurchaseDocType indica si el tipo de documento de compra es reconocido.
func ValidPurchaseDocType(t string) bool {
	switch t {
	case PurchaseDocFactura, PurchaseDocBoleta, PurchaseDocGuia:
		return true
	}
	return false
}
