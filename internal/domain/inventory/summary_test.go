package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func product(sku, category string, qty int64, cost, selling int64, active bool) *entity.Product {
	c, s := decimal.NewFromInt(cost), decimal.NewFromInt(selling)
	return &entity.Product{
		SKU: sku, CategoryID: category, QuantityInStock: qty,
		CostPrice: c, SellingPrice: s, MarkupPercentage: inventory.Markup(c, s),
		MinimumStockLevel: 5, MaximumStockLevel: 50, ReorderPoint: 10, ReorderQuantity: 10,
		IsActive: active,
	}
}

func TestSummarizeValue_AgrupaYOrdenaPorCosto(t *testing.T) {
	products := []*entity.Product{
		product("A", "c1", 10, 10, 15, true), // costo 100, venta 150, markup 50
		product("B", "c1", 5, 20, 20, true),  // costo 100, venta 100, markup 0
		product("C", "c2", 100, 3, 6, true),  // costo 300
		product("D", "", 1, 1, 2, true),
		product("E", "c2", 1000, 100, 200, false), // inactivo: excluido
	}
	names := map[string]string{"c1": "Ferretería", "c2": "Pinturas"}

	groups := inventory.SummarizeValue(products, inventory.GroupByCategory, names)
	require.Len(t, groups, 3)

	assert.Equal(t, "Pinturas", groups[0].GroupName)
	assert.Equal(t, "300", groups[0].TotalCostValue.String())

	assert.Equal(t, "Ferretería", groups[1].GroupName)
	assert.Equal(t, 2, groups[1].ProductCount)
	assert.Equal(t, int64(15), groups[1].TotalQuantity)
	assert.Equal(t, "250", groups[1].TotalSellingValue.String())
	assert.Equal(t, "25", groups[1].AverageMarkup.String())

	assert.Equal(t, inventory.UnassignedGroup, groups[2].GroupName)
}

func TestLowStock_FiltraYOrdenaPorDeficit(t *testing.T) {
	products := []*entity.Product{
		product("A", "", 9, 1, 1, true),
		product("B", "", 0, 1, 1, true),
		product("C", "", 30, 1, 1, true),
		product("D", "", 0, 1, 1, false),
		product("E", "", 10, 1, 1, true),
	}
	low := inventory.LowStock(products)
	require.Len(t, low, 3)
	assert.Equal(t, "B", low[0].SKU)
	assert.Equal(t, "A", low[1].SKU)
	assert.Equal(t, "E", low[2].SKU)
}
