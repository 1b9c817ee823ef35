package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Markup porcentaje de margen sobre costo: (venta - costo) / costo × 100, redondeado a 2 decimales.
// Con costo 0 el margen es 0.
func Markup(cost, selling decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return selling.Sub(cost).Div(cost).Mul(hundred).Round(2)
}
