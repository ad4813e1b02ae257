package quote

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

// ProfitLine ganancia de una línea con el costo vigente del ítem.
type ProfitLine struct {
	ItemID    string
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Revenue   decimal.Decimal
	TotalCost decimal.Decimal
	Profit    decimal.Decimal
}

// Profit resumen de ganancia de un documento.
type Profit struct {
	Lines     []ProfitLine
	Revenue   decimal.Decimal
	TotalCost decimal.Decimal
	Profit    decimal.Decimal
	MarginPct decimal.Decimal // ganancia / venta × 100, dos decimales
}

// ComputeProfit calcula (precio − costo) × cantidad por línea. costs mapea ItemID → costo unitario;
// un ítem sin costo conocido cuenta con costo cero.
func ComputeProfit(lines []entity.CotizacionLine, costs map[string]decimal.Decimal) Profit {
	p := Profit{Revenue: decimal.Zero, TotalCost: decimal.Zero, Profit: decimal.Zero, MarginPct: decimal.Zero}
	hundred := decimal.NewFromInt(100)
	for _, l := range lines {
		qty := decimal.NewFromInt(l.Quantity)
		cost := costs[l.ItemID]
		pl := ProfitLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Cost:      cost,
			Revenue:   l.Price.Mul(qty),
			TotalCost: cost.Mul(qty),
		}
		pl.Profit = pl.Revenue.Sub(pl.TotalCost)
		p.Lines = append(p.Lines, pl)
		p.Revenue = p.Revenue.Add(pl.Revenue)
		p.TotalCost = p.TotalCost.Add(pl.TotalCost)
	}
	p.Profit = p.Revenue.Sub(p.TotalCost)
	if p.Revenue.IsPositive() {
		p.MarginPct = p.Profit.Div(p.Revenue).Mul(hundred).Round(2)
	}
	return p
}
