package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func fields(ve *domain.ValidationError) []string {
	out := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		out = append(out, v.Field)
	}
	return out
}

func TestValidateNewProduct_ReportaTodasLasViolaciones(t *testing.T) {
	ve := inventory.ValidateNewProduct("", "",
		decimal.NewFromInt(20), decimal.NewFromInt(10),
		entity.Thresholds{Minimum: 10, Maximum: 10, ReorderPoint: 5, ReorderQuantity: 0},
		-1,
	)
	require.False(t, ve.Empty())
	got := fields(ve)
	assert.Contains(t, got, "sku")
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "selling_price")
	assert.Contains(t, got, "maximum_stock_level")
	assert.Contains(t, got, "reorder_point")
	assert.Contains(t, got, "reorder_quantity")
	assert.Contains(t, got, "quantity_in_stock")

	err := ve.OrNil()
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateNewProduct_Valido(t *testing.T) {
	ve := inventory.ValidateNewProduct("SKU-1", "Tornillo",
		decimal.NewFromInt(10), decimal.NewFromInt(15),
		entity.Thresholds{Minimum: 5, Maximum: 50, ReorderPoint: 10, ReorderQuantity: 20},
		0,
	)
	assert.True(t, ve.Empty())
	assert.NoError(t, ve.OrNil())
}

func TestValidatePrices_VentaMenorQueCosto(t *testing.T) {
	ve := inventory.ValidatePrices(decimal.NewFromInt(10), decimal.NewFromFloat(9.99))
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, domain.CodeOutOfRange, ve.Violations[0].Code)
}

func TestValidateMovement(t *testing.T) {
	neg := decimal.NewFromInt(-1)

	assert.True(t, inventory.ValidateMovement(entity.MovementTypeIN, 5, nil, "", "").Empty())
	assert.True(t, inventory.ValidateMovement(entity.MovementTypeOUT, -5, nil, "", "").Empty())
	assert.True(t, inventory.ValidateMovement(entity.MovementTypeADJUSTMENT, -2, nil, "", "").Empty())
	assert.True(t, inventory.ValidateMovement(entity.MovementTypeTRANSFER, -2, nil, "a", "b").Empty())

	assert.False(t, inventory.ValidateMovement(entity.MovementTypeIN, -5, nil, "", "").Empty())
	assert.False(t, inventory.ValidateMovement(entity.MovementTypeOUT, 5, nil, "", "").Empty())
	assert.False(t, inventory.ValidateMovement(entity.MovementTypeADJUSTMENT, 0, nil, "", "").Empty())
	assert.False(t, inventory.ValidateMovement("LOAN", 1, nil, "", "").Empty())
	assert.False(t, inventory.ValidateMovement(entity.MovementTypeIN, 1, &neg, "", "").Empty())
	assert.False(t, inventory.ValidateMovement(entity.MovementTypeTRANSFER, 1, nil, "a", "a").Empty())
	assert.False(t, inventory.ValidateMovement(entity.MovementTypeTRANSFER, 1, nil, "", "b").Empty())
}

func TestValidatePrices_MasDeDosDecimales(t *testing.T) {
	ve := inventory.ValidatePrices(decimal.RequireFromString("10.005"), decimal.RequireFromString("15.001"))
	require.Len(t, ve.Violations, 2)
	assert.Equal(t, []string{"cost_price", "selling_price"}, fields(ve))
	assert.Equal(t, domain.CodeInvalid, ve.Violations[0].Code)

	// Ceros a la derecha no agregan precisión.
	assert.True(t, inventory.ValidatePrices(decimal.RequireFromString("10.500"), decimal.RequireFromString("15.0000")).Empty())
}

func TestValidatePrices_FueraDeRango(t *testing.T) {
	ve := inventory.ValidatePrices(decimal.NewFromInt(1), decimal.RequireFromString("10000000000"))
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "selling_price", ve.Violations[0].Field)
	assert.Equal(t, domain.CodeOutOfRange, ve.Violations[0].Code)
}

func TestValidateMovement_CostoUnitarioConMasDeDosDecimales(t *testing.T) {
	cost := decimal.RequireFromString("0.005")
	ve := inventory.ValidateMovement(entity.MovementTypeIN, 100, &cost, "", "")
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "unit_cost", ve.Violations[0].Field)
	assert.Equal(t, domain.CodeInvalid, ve.Violations[0].Code)

	ok := decimal.RequireFromString("0.01")
	assert.True(t, inventory.ValidateMovement(entity.MovementTypeIN, 100, &ok, "", "").Empty())
}
