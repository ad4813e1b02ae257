package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rasiva-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyTotals_ExactDecimal(t *testing.T) {
	c := &entity.Cotizacion{Lines: []entity.CotizacionLine{
		{ItemID: "a", Quantity: 3, Price: dec("0.1")},
		{ItemID: "b", Quantity: 7, Price: dec("4590.33")},
		{ItemID: "c", Quantity: 1, Price: dec("0")},
	}}

	ApplyTotals(c)

	assert.True(t, c.Lines[0].Total.Equal(dec("0.3")))
	assert.True(t, c.Lines[1].Total.Equal(dec("32132.31")))
	assert.True(t, c.Lines[2].Total.IsZero())
	assert.True(t, c.Total.Equal(dec("32132.61")), c.Total.String())
}

func TestApplyTotals_SumOfLines(t *testing.T) {
	cases := [][]entity.CotizacionLine{
		{{Quantity: 1, Price: dec("1990")}},
		{{Quantity: 12, Price: dec("5990.5")}, {Quantity: 40, Price: dec("0.01")}},
		{{Quantity: 1000000, Price: dec("123456.789")}, {Quantity: 2, Price: dec("0.005")}},
	}
	for _, lines := range cases {
		c := &entity.Cotizacion{Lines: lines}
		ApplyTotals(c)
		sum := decimal.Zero
		for _, l := range c.Lines {
			assert.True(t, l.Total.Equal(l.Price.Mul(decimal.NewFromInt(l.Quantity))))
			sum = sum.Add(l.Total)
		}
		assert.True(t, c.Total.Equal(sum))
	}
}

func TestStateOf(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		doc  entity.Cotizacion
		want State
	}{
		{"borrador", entity.Cotizacion{Tipo: entity.TipoCotizacion, Estado: entity.EstadoBorrador}, StateDraft},
		{"cotización finalizada", entity.Cotizacion{Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada}, StateFinalizedQuote},
		{"cotización convertida", entity.Cotizacion{Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada, Converted: true}, StateConvertedQuote},
		{"nota finalizada", entity.Cotizacion{Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada}, StateFinalizedNote},
		{"nota anulada", entity.Cotizacion{Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada, CancelledAt: &now}, StateCancelledNote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(&tt.doc))
		})
	}
}

func TestEditable(t *testing.T) {
	now := time.Now()
	assert.True(t, Editable(&entity.Cotizacion{Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada}))
	assert.False(t, Editable(&entity.Cotizacion{Tipo: entity.TipoCotizacion, Estado: entity.EstadoFinalizada, Converted: true}))
	assert.False(t, Editable(&entity.Cotizacion{Tipo: entity.TipoNota, Estado: entity.EstadoFinalizada, CancelledAt: &now}))
}

func TestDemand_AggregatesAndSkipsFreeText(t *testing.T) {
	d := Demand([]entity.CotizacionLine{
		{ItemID: "cemento", Quantity: 10},
		{ItemID: "", Name: "flete", Quantity: 1},
		{ItemID: "cemento", Quantity: 5},
		{ItemID: "fierro", Quantity: 2},
	})
	assert.Equal(t, map[string]int64{"cemento": 15, "fierro": 2}, d)
}

func TestReconcile(t *testing.T) {
	current := map[string]int64{"a": 10, "b": 5, "c": 3}
	desired := map[string]int64{"a": 10, "b": 8, "d": 1}

	got := Reconcile(current, desired)

	assert.Equal(t, []Adjustment{
		{ItemID: "b", Quantity: 8},
		{ItemID: "c", Quantity: 0},
		{ItemID: "d", Quantity: 1},
	}, got)
}

func TestReconcile_NoChanges(t *testing.T) {
	assert.Empty(t, Reconcile(map[string]int64{"a": 1}, map[string]int64{"a": 1}))
	assert.Empty(t, Reconcile(nil, nil))
}

func TestComputeProfit(t *testing.T) {
	lines := []entity.CotizacionLine{
		{ItemID: "a", Name: "Cemento", Quantity: 10, Price: dec("5990")},
		{ItemID: "b", Name: "Fierro", Quantity: 4, Price: dec("3500")},
		{ItemID: "", Name: "Flete", Quantity: 1, Price: dec("15000")},
	}
	costs := map[string]decimal.Decimal{"a": dec("4500"), "b": dec("2800")}

	p := ComputeProfit(lines, costs)

	assert.Len(t, p.Lines, 3)
	assert.True(t, p.Lines[0].Profit.Equal(dec("14900")))
	assert.True(t, p.Lines[1].Profit.Equal(dec("2800")))
	assert.True(t, p.Lines[2].Profit.Equal(dec("15000")))
	assert.True(t, p.Revenue.Equal(dec("88900")))
	assert.True(t, p.TotalCost.Equal(dec("56200")))
	assert.True(t, p.Profit.Equal(dec("32700")))
	assert.Equal(t, "36.78", p.MarginPct.StringFixed(2))
}

func TestComputeProfit_Empty(t *testing.T) {
	p := ComputeProfit(nil, nil)
	assert.True(t, p.MarginPct.IsZero())
	assert.True(t, p.Profit.IsZero())
}
