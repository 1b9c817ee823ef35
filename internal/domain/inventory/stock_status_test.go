package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func TestClassifyStock_Prioridad(t *testing.T) {
	th := entity.Thresholds{Minimum: 8, Maximum: 100, ReorderPoint: 10, ReorderQuantity: 20}

	cases := []struct {
		name string
		qty  int64
		want inventory.StockStatus
	}{
		{"bajo reorden y bajo mínimo gana reorden", 5, inventory.StatusReorderNeeded},
		{"igual al punto de reorden", 10, inventory.StatusReorderNeeded},
		{"cero", 0, inventory.StatusReorderNeeded},
		{"normal", 50, inventory.StatusNormal},
		{"justo sobre reorden", 11, inventory.StatusNormal},
		{"igual al máximo", 100, inventory.StatusOverstock},
		{"sobre el máximo", 150, inventory.StatusOverstock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ClassifyStock(tc.qty, th))
		})
	}
}

func TestClassifyStock_LowStockCuandoReordenIgualAlMinimo(t *testing.T) {
	// reorder == minimum: la zona LOW_STOCK queda vacía; con reorden por debajo aparece.
	th := entity.Thresholds{Minimum: 5, Maximum: 50, ReorderPoint: 5, ReorderQuantity: 1}
	assert.Equal(t, inventory.StatusReorderNeeded, inventory.ClassifyStock(5, th))
	assert.Equal(t, inventory.StatusNormal, inventory.ClassifyStock(6, th))

	// Umbrales que no cumplen reorder >= minimum igual se clasifican de forma total.
	loose := entity.Thresholds{Minimum: 8, Maximum: 50, ReorderPoint: 3, ReorderQuantity: 1}
	assert.Equal(t, inventory.StatusLowStock, inventory.ClassifyStock(6, loose))
}

func TestClassifyStock_EsTotal(t *testing.T) {
	th := entity.Thresholds{Minimum: 5, Maximum: 50, ReorderPoint: 10, ReorderQuantity: 5}
	valid := map[inventory.StockStatus]bool{
		inventory.StatusReorderNeeded: true,
		inventory.StatusLowStock:      true,
		inventory.StatusOverstock:     true,
		inventory.StatusNormal:        true,
	}
	for q := int64(0); q <= 80; q++ {
		assert.True(t, valid[inventory.ClassifyStock(q, th)], "cantidad %d sin estado", q)
	}
}

func TestMarkup(t *testing.T) {
	assert.True(t, decimal.NewFromInt(50).Equal(inventory.Markup(decimal.NewFromInt(10), decimal.NewFromInt(15))))
	assert.True(t, decimal.Zero.Equal(inventory.Markup(decimal.Zero, decimal.NewFromInt(15))))
	assert.Equal(t, "33.33", inventory.Markup(decimal.NewFromInt(3), decimal.NewFromInt(4)).StringFixed(2))
}
