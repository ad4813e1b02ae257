package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento.
const (
	TipoCotizacion = "cotizacion"
	TipoNota       = "nota"
)

// Estados del documento.
const (
	EstadoBorrador   = "borrador"
	EstadoFinalizada = "finalizada"
	EstadoCancelada  = "cancelada"
)

// Textos por defecto heredados de los formularios de cotización.
const (
	DefaultFormaPago = "65% Al inicio y 35% al momento de la entrega."
	DefaultNota      = "Esta cotización es aceptada después de cancelado el 65%."
)

// Client agrupa los datos del cliente copiados en cada documento.
type Client struct {
	Name      string // cliente
	TaxID     string // RUT
	Business  string // giro
	Address   string
	Commune   string
	City      string
	Attention string // atención (contacto)
	Email     string
	Phone     string
}

// Cotizacion unifica cotización, nota de venta y borrador (distinguidos por Tipo y Estado).
type Cotizacion struct {
	ID              string
	Client          Client
	DeliveryAddress string // dirección de entrega
	IssueDate       string // fechaHoy, tal como la envía el formulario
	DeliveryDate    time.Time
	PaymentMethod   string
	PaymentTerms    string // formaPago
	Notes           string // nota
	DocumentNumber  string // numeroDocumento (factura/boleta asociada)
	DocumentType    string // tipoDocumento
	Tipo            string
	Estado          string
	CancelledAt     *time.Time
	Lines           []CotizacionLine
	Total           decimal.Decimal
	Numero          *int64
	PDFURL          string
	OriginalID      string // cotizacionOriginalId
	CreatedBy       string
	Converted       bool // solo lectura: existe una nota que apunta a este documento
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CotizacionLine línea de producto con nombre y precio congelados al momento de guardar.
type CotizacionLine struct {
	ItemID   string
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Total    decimal.Decimal
}

// IsDraft indica si el documento es un borrador.
func (c *Cotizacion) IsDraft() bool { return c.Estado == EstadoBorrador }

// IsCancelled indica si la nota fue anulada.
func (c *Cotizacion) IsCancelled() bool { return c.CancelledAt != nil }

// IsNote indica si el documento es una nota de venta.
func (c *Cotizacion) IsNote() bool { return c.Tipo == TipoNota }

// HoldsStock indica si el documento debe tener stock comprometido.
func (c *Cotizacion) HoldsStock() bool {
	return c.IsNote() && !c.IsDraft() && !c.IsCancelled()
}
