package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// MoneyScale decimales con que se almacenan precios y costos.
const MoneyScale = 2

// MaxMoney mayor monto representable en las columnas de precio (NUMERIC(12,2)).
var MaxMoney = decimal.RequireFromString("9999999999.99")

// ValidateMoney agrega a ve las violaciones de un monto: negativo, más de dos decimales o fuera de rango.
// Los montos se validan tal como llegan para que markup y valor total se calculen sobre lo que se guarda.
func ValidateMoney(ve *domain.ValidationError, field string, d decimal.Decimal, label string) {
	switch {
	case d.IsNegative():
		ve.Add(field, domain.CodeNegative, label+" no puede ser negativo")
	case !d.Equal(d.Round(MoneyScale)):
		ve.Add(field, domain.CodeInvalid, label+" admite como máximo dos decimales")
	case d.GreaterThan(MaxMoney):
		ve.Add(field, domain.CodeOutOfRange, label+" excede el máximo permitido")
	}
}

// ValidatePrices valida precios no negativos con dos decimales y venta >= costo. Reporta todas las violaciones.
func ValidatePrices(cost, selling decimal.Decimal) *domain.ValidationError {
	ve := &domain.ValidationError{}
	ValidateMoney(ve, "cost_price", cost, "el costo")
	ValidateMoney(ve, "selling_price", selling, "el precio de venta")
	if selling.LessThan(cost) {
		ve.Add("selling_price", domain.CodeOutOfRange, "el precio de venta debe ser mayor o igual al costo")
	}
	return ve
}

// ValidateThresholds valida los umbrales de stock. Reporta todas las violaciones.
func ValidateThresholds(t entity.Thresholds) *domain.ValidationError {
	ve := &domain.ValidationError{}
	if t.Minimum < 0 {
		ve.Add("minimum_stock_level", domain.CodeNegative, "el stock mínimo no puede ser negativo")
	}
	if t.Maximum < 0 {
		ve.Add("maximum_stock_level", domain.CodeNegative, "el stock máximo no puede ser negativo")
	}
	if t.ReorderPoint < 0 {
		ve.Add("reorder_point", domain.CodeNegative, "el punto de reorden no puede ser negativo")
	}
	if t.Maximum <= t.Minimum {
		ve.Add("maximum_stock_level", domain.CodeOutOfRange, "el stock máximo debe ser mayor al mínimo")
	}
	if t.ReorderPoint < t.Minimum {
		ve.Add("reorder_point", domain.CodeOutOfRange, "el punto de reorden debe ser mayor o igual al stock mínimo")
	}
	if t.ReorderQuantity <= 0 {
		ve.Add("reorder_quantity", domain.CodeOutOfRange, "la cantidad de reorden debe ser mayor a cero")
	}
	return ve
}

// ValidateNewProduct valida todos los campos de un producto nuevo (identidad, precios, umbrales
// y cantidad inicial) y devuelve todas las violaciones juntas.
func ValidateNewProduct(sku, name string, cost, selling decimal.Decimal, t entity.Thresholds, initialQty int64) *domain.ValidationError {
	ve := &domain.ValidationError{}
	if strings.TrimSpace(sku) == "" {
		ve.Add("sku", domain.CodeRequired, "sku es requerido")
	}
	if strings.TrimSpace(name) == "" {
		ve.Add("name", domain.CodeRequired, "name es requerido")
	}
	ve.Merge(ValidatePrices(cost, selling))
	ve.Merge(ValidateThresholds(t))
	if initialQty < 0 {
		ve.Add("quantity_in_stock", domain.CodeNegative, "la cantidad inicial no puede ser negativa")
	}
	return ve
}

// ValidateMovement valida tipo, signo del delta, costo unitario y ubicaciones de un movimiento.
func ValidateMovement(typ entity.MovementType, delta int64, unitCost *decimal.Decimal, fromLocation, toLocation string) *domain.ValidationError {
	ve := &domain.ValidationError{}
	if !typ.Valid() {
		ve.Add("type", domain.CodeInvalid, "tipo de movimiento inválido (IN, OUT, ADJUSTMENT, TRANSFER)")
	}
	switch {
	case delta == 0:
		ve.Add("quantity_change", domain.CodeOutOfRange, "la cantidad del movimiento no puede ser cero")
	case typ == entity.MovementTypeIN && delta < 0:
		ve.Add("quantity_change", domain.CodeOutOfRange, "una entrada (IN) debe ser positiva")
	case typ == entity.MovementTypeOUT && delta > 0:
		ve.Add("quantity_change", domain.CodeOutOfRange, "una salida (OUT) debe ser negativa")
	}
	if unitCost != nil {
		ValidateMoney(ve, "unit_cost", *unitCost, "el costo unitario")
	}
	if typ == entity.MovementTypeTRANSFER {
		if fromLocation == "" || toLocation == "" {
			ve.Add("location", domain.CodeRequired, "un traslado requiere ubicación de origen y destino")
		} else if fromLocation == toLocation {
			ve.Add("location", domain.CodeInvalid, "origen y destino del traslado deben ser distintos")
		}
	}
	return ve
}
