// Package pdf genera los PDFs de cotizaciones, notas de venta y guías de despacho.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor (razón social, RUT, giro)  │  Título + N°   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: dos columnas (RUT, giro... │ atención, entrega...) │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Item | Cant. | Descripción | Valor Unit. | Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA 19% / Total                             │
//	│  PIE: forma de pago, nota y datos de transferencia           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 230, Blue: 230}
	colorAlert   = &props.Color{Red: 200, Green: 0, Blue: 0}
)

// IVARate tasa de IVA aplicada sobre el neto.
var IVARate = decimal.RequireFromString("0.19")

const blank = "__________________"

// Issuer datos del emisor impresos en la cabecera y el pie.
type Issuer struct {
	Name    string
	RUT     string
	Giro    string
	Address string
	Phone   string
	Email   string
	Bank    string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los renderizadores de documentos usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer Issuer
	now    func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer, now: time.Now}
}

// tableLine fila de la tabla de productos, común a documentos y guías.
type tableLine struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Total    decimal.Decimal
}

// RenderCotizacion genera el PDF de una cotización, nota de venta o borrador.
func (g *MarotoPDFGenerator) RenderCotizacion(_ context.Context, doc *entity.Cotizacion) ([]byte, error) {
	lines := make([]tableLine, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, tableLine{Name: l.Name, Quantity: l.Quantity, Price: l.Price, Total: l.Total})
	}
	numero := "Borrador"
	if doc.Numero != nil {
		numero = fmt.Sprintf("N° %06d", *doc.Numero)
	}
	return g.render(documentTitle(doc.Tipo), numero, doc, lines, doc.PaymentTerms, doc.Notes)
}

// RenderDispatchGuide genera el PDF de una guía de despacho con los datos del cliente de la nota.
func (g *MarotoPDFGenerator) RenderDispatchGuide(_ context.Context, guide *entity.DispatchGuide, note *entity.Cotizacion) ([]byte, error) {
	lines := make([]tableLine, 0, len(guide.Lines))
	for _, l := range guide.Lines {
		lines = append(lines, tableLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
			Total:    l.Price.Mul(decimal.NewFromInt(l.Quantity)),
		})
	}
	numero := fmt.Sprintf("N° %06d", guide.Numero)
	ref := ""
	if note.Numero != nil {
		ref = fmt.Sprintf("Despacho de la nota de venta N° %d.", *note.Numero)
	}
	return g.render("Guía de Despacho", numero, note, lines, "", ref)
}

func (g *MarotoPDFGenerator) render(title, numero string, doc *entity.Cotizacion, lines []tableLine, terms, notes string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(title, numero))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRows(terms, notes)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y título + número + fecha (der).
func (g *MarotoPDFGenerator) headerRow(title, numero string) core.Row {
	gray := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8, Top: top, Color: colorGray})
	}
	return row.New(28).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(g.issuer.Name), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			gray("RUT: "+nonEmpty(g.issuer.RUT, "—"), 8),
			gray(g.issuer.Giro, 12),
			gray("Fono: "+nonEmpty(g.issuer.Phone, "—"), 16),
			gray("Dirección: "+nonEmpty(g.issuer.Address, "—"), 20),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 9,
			}),
			text.New("Fecha: "+g.now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// clientRows: datos del cliente en dos columnas.
func clientRows(doc *entity.Cotizacion) []core.Row {
	c := doc.Client
	entrega := "Por definir"
	if !doc.DeliveryDate.IsZero() {
		entrega = doc.DeliveryDate.Format("02/01/2006")
	}
	left := [][2]string{
		{"Cliente:", nonEmpty(c.Name, blank)},
		{"RUT:", nonEmpty(c.TaxID, blank)},
		{"Giro:", nonEmpty(c.Business, blank)},
		{"Dirección:", nonEmpty(c.Address, blank)},
		{"Comuna:", nonEmpty(c.Commune, blank)},
		{"Ciudad:", nonEmpty(c.City, "Santiago")},
		{"Mail:", nonEmpty(c.Email, blank)},
	}
	right := [][2]string{
		{"At. Sr.:", nonEmpty(c.Attention, blank)},
		{"Válida:", "3 días"},
		{"Entrega en:", nonEmpty(doc.DeliveryAddress, blank)},
		{"Cel.:", c.Phone},
		{"Entrega:", entrega},
		{"Pago:", nonEmpty(doc.PaymentMethod, "Contado")},
		{"", ""},
	}

	rows := make([]core.Row, 0, len(left))
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Top: 1})
	}
	for i := range left {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(label(left[i][0])),
			col.New(4).Add(value(left[i][1])),
			col.New(2).Add(label(right[i][0])),
			col.New(4).Add(value(right[i][1])),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Valor Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableDetailRows(lines []tableLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d°", i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+FormatMoney(l.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+FormatMoney(l.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// Totals neto, IVA y total de un conjunto de líneas.
func Totals(lines []decimal.Decimal) (net, iva, total decimal.Decimal) {
	net = decimal.Sum(decimal.Zero, lines...)
	iva = net.Mul(IVARate)
	return net, iva, net.Add(iva)
}

func totalsRow(lines []tableLine) core.Row {
	amounts := make([]decimal.Decimal, 0, len(lines))
	for _, l := range lines {
		amounts = append(amounts, l.Total)
	}
	net, iva, total := Totals(amounts)

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Neto.", 1),
			label("IVA.", 7),
			text.New("Total.", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value("$"+FormatMoney(net), 1),
			value("$"+FormatMoney(iva), 7),
			text.New("$"+FormatMoney(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

// footerRows: forma de pago, nota y datos de transferencia.
func (g *MarotoPDFGenerator) footerRows(terms, notes string) []core.Row {
	pair := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(value, props.Text{Size: 8, Top: 1})),
		)
	}
	var rows []core.Row
	if terms != "" {
		rows = append(rows, pair("Forma de Pago:", terms))
	}
	if notes != "" {
		rows = append(rows, pair("Nota:", notes))
	}
	rows = append(rows, row.New(4))
	rows = append(rows, row.New(6).Add(col.New(12).Add(
		text.New("Transferir a:", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1}),
	)))
	for _, s := range []string{g.issuer.Name, g.issuer.Bank, "Rut. " + nonEmpty(g.issuer.RUT, "—"), g.issuer.Email} {
		if strings.TrimSpace(s) == "" {
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(s, props.Text{Size: 8, Top: 0.5}))))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(tipo string) string {
	switch tipo {
	case entity.TipoCotizacion:
		return "Cotización"
	case entity.TipoNota:
		return "Nota de Venta"
	}
	return "Documento"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con puntos de miles y coma decimal (solo si hay centavos).
// Ej: 25000 → "25.000", 1500.5 → "1.500,50".
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)
	intPart := d.Truncate(0)
	s := intPart.String()
	n := len(s)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac := d.Sub(intPart); !frac.IsZero() {
		buf = append(buf, ',')
		buf = append(buf, frac.StringFixed(2)[2:]...)
	}
	return string(buf)
}
