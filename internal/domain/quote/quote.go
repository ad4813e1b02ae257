// Package quote contiene las reglas puras del ciclo de vida de cotizaciones y notas de venta:
// totales, estado derivado y conciliación de stock comprometido.
package quote

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// State estado derivado de un documento.
type State string

const (
	StateDraft          State = "draft"
	StateFinalizedQuote State = "finalized-quote"
	StateFinalizedNote  State = "finalized-note"
	StateConvertedQuote State = "converted-quote"
	StateCancelledNote  State = "cancelled-note"
)

// StateOf deriva el estado a partir de tipo, estado, anulación y si existe una nota que lo referencia.
func StateOf(c *entity.Cotizacion) State {
	switch {
	case c.IsDraft():
		return StateDraft
	case c.IsNote() && c.IsCancelled():
		return StateCancelledNote
	case c.IsNote():
		return StateFinalizedNote
	case c.Converted:
		return StateConvertedQuote
	default:
		return StateFinalizedQuote
	}
}

// Editable indica si el documento admite cambios (ni cotización convertida ni nota anulada).
func Editable(c *entity.Cotizacion) bool {
	s := StateOf(c)
	return s != StateConvertedQuote && s != StateCancelledNote
}

// LineTotal cantidad × precio, exacto.
func LineTotal(qty int64, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

// ApplyTotals recalcula el total de cada línea y el total del documento.
func ApplyTotals(c *entity.Cotizacion) {
	total := decimal.Zero
	for i := range c.Lines {
		c.Lines[i].Total = LineTotal(c.Lines[i].Quantity, c.Lines[i].Price)
		total = total.Add(c.Lines[i].Total)
	}
	c.Total = total
}

// Demand suma las cantidades por ítem. Las líneas sin ítem (texto libre) no reservan stock.
func Demand(lines []entity.CotizacionLine) map[string]int64 {
	out := make(map[string]int64, len(lines))
	for _, l := range lines {
		if l.ItemID == "" || l.Quantity <= 0 {
			continue
		}
		out[l.ItemID] += l.Quantity
	}
	return out
}

// Adjustment cantidad que el documento debe tener comprometida en un ítem (0 = liberar).
type Adjustment struct {
	ItemID   string
	Quantity int64
}

// Reconcile compara lo comprometido hoy con la demanda nueva y devuelve los ajustes necesarios,
// ordenados por ItemID para que los bloqueos de filas se tomen siempre en el mismo orden.
func Reconcile(current, desired map[string]int64) []Adjustment {
	ids := make([]string, 0, len(current)+len(desired))
	seen := make(map[string]struct{}, len(current)+len(desired))
	for _, m := range []map[string]int64{current, desired} {
		for id := range m {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []Adjustment
	for _, id := range ids {
		if current[id] == desired[id] {
			continue
		}
		out = append(out, Adjustment{ItemID: id, Quantity: desired[id]})
	}
	return out
}

// SortedItemIDs devuelve las claves ordenadas.
func SortedItemIDs(m map[string]int64) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
