package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CotizacionLineRequest línea enviada por el formulario.
type CotizacionLineRequest struct {
	ItemID   string          `json:"itemId" validate:"omitempty,uuid"`
	Name     string          `json:"nombre" validate:"max=300"`
	Quantity int64           `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
}

// CotizacionRequest entrada de creación/edición de cotizaciones, notas de venta y borradores.
type CotizacionRequest struct {
	ID              string                  `json:"_id" validate:"omitempty,uuid"`
	Client          string                  `json:"cliente" validate:"max=300"`
	DeliveryAddress string                  `json:"direccion"`
	IssueDate       string                  `json:"fechaHoy"`
	DeliveryDate    string                  `json:"fechaEntrega"`
	PaymentMethod   string                  `json:"metodoPago"`
	ClientTaxID     string                  `json:"rutCliente"`
	ClientBusiness  string                  `json:"giroCliente"`
	ClientAddress   string                  `json:"direccionCliente"`
	ClientCommune   string                  `json:"comunaCliente"`
	ClientCity      string                  `json:"ciudadCliente"`
	Attention       string                  `json:"atencion"`
	ClientEmail     string                  `json:"emailCliente" validate:"omitempty,email"`
	ClientPhone     string                  `json:"telefonoCliente"`
	PaymentTerms    string                  `json:"formaPago"`
	Notes           string                  `json:"nota"`
	DocumentNumber  string                  `json:"numeroDocumento"`
	DocumentType    string                  `json:"tipoDocumento"`
	Tipo            string                  `json:"tipo"`
	Estado          string                  `json:"estado" validate:"omitempty,oneof=borrador finalizada"`
	Lines           []CotizacionLineRequest `json:"productos" validate:"dive"`
}

// CotizacionLineResponse línea con nombre y precio congelados.
type CotizacionLineResponse struct {
	ItemID   string          `json:"itemId,omitempty"`
	Name     string          `json:"nombre"`
	Quantity int64           `json:"cantidad"`
	Price    decimal.Decimal `json:"precio"`
	Total    decimal.Decimal `json:"total"`
}

// CotizacionResponse salida de un documento. YaConvertida indica que una nota lo referencia.
type CotizacionResponse struct {
	ID               string                   `json:"_id"`
	Client           string                   `json:"cliente"`
	DeliveryAddress  string                   `json:"direccion"`
	IssueDate        string                   `json:"fechaHoy"`
	DeliveryDate     string                   `json:"fechaEntrega"`
	PaymentMethod    string                   `json:"metodoPago"`
	ClientTaxID      string                   `json:"rutCliente"`
	ClientBusiness   string                   `json:"giroCliente"`
	ClientAddress    string                   `json:"direccionCliente"`
	ClientCommune    string                   `json:"comunaCliente"`
	ClientCity       string                   `json:"ciudadCliente"`
	Attention        string                   `json:"atencion"`
	ClientEmail      string                   `json:"emailCliente"`
	ClientPhone      string                   `json:"telefonoCliente"`
	PaymentTerms     string                   `json:"formaPago"`
	Notes            string                   `json:"nota"`
	DocumentNumber   string                   `json:"numeroDocumento"`
	DocumentType     string                   `json:"tipoDocumento"`
	Tipo             string                   `json:"tipo"`
	Estado           string                   `json:"estado"`
	Cancelled        *time.Time               `json:"anulada"`
	Lines            []CotizacionLineResponse `json:"productos"`
	Total            decimal.Decimal          `json:"total"`
	Numero           *int64                   `json:"numero"`
	PDFURL           string                   `json:"pdfUrl,omitempty"`
	OriginalID       string                   `json:"cotizacionOriginalId,omitempty"`
	CreatedBy        string                   `json:"creadoPor,omitempty"`
	AlreadyConverted bool                     `json:"yaConvertida"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// CotizacionListRequest filtros del listado.
type CotizacionListRequest struct {
	Tipo   string `query:"tipo" validate:"omitempty,oneof=cotizacion nota"`
	Estado string `query:"estado" validate:"omitempty,oneof=borrador finalizada cancelada"`
}

// ProfitLineResponse ganancia por línea.
type ProfitLineResponse struct {
	ItemID    string          `json:"itemId,omitempty"`
	Name      string          `json:"nombre"`
	Quantity  int64           `json:"cantidad"`
	Price     decimal.Decimal `json:"precio"`
	Cost      decimal.Decimal `json:"costo"`
	Revenue   decimal.Decimal `json:"venta"`
	TotalCost decimal.Decimal `json:"costoTotal"`
	Profit    decimal.Decimal `json:"ganancia"`
}

// ProfitResponse resumen de ganancia de un documento.
type ProfitResponse struct {
	CotizacionID string               `json:"cotizacionId"`
	Lines        []ProfitLineResponse `json:"productos"`
	Revenue      decimal.Decimal      `json:"venta"`
	TotalCost    decimal.Decimal      `json:"costo"`
	Profit       decimal.Decimal      `json:"ganancia"`
	MarginPct    decimal.Decimal      `json:"margen"`
}
