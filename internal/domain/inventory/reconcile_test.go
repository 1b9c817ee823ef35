package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func TestNewStockMovement_CalculaNuevoYValor(t *testing.T) {
	cost := decimal.RequireFromString("2.50")
	m := entity.NewStockMovement("m1", "p1", entity.MovementTypeOUT, 10, -4, &cost, time.Now())
	assert.Equal(t, int64(6), m.NewQuantity)
	assert.Equal(t, "10.00", m.TotalValue.StringFixed(2))
	assert.True(t, m.Reconciles())

	noCost := entity.NewStockMovement("m2", "p1", entity.MovementTypeIN, 0, 3, nil, time.Now())
	assert.True(t, noCost.TotalValue.IsZero())
}

func TestReplay_CadenaValida(t *testing.T) {
	now := time.Now()
	movs := []*entity.StockMovement{
		entity.NewStockMovement("a", "p", entity.MovementTypeIN, 0, 20, nil, now),
		entity.NewStockMovement("b", "p", entity.MovementTypeOUT, 20, -15, nil, now),
	}
	res, err := inventory.Replay("p", 5, movs)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.ReplayedStock)
	assert.Equal(t, "a", res.FirstMovement)
	assert.Equal(t, "b", res.LastMovement)
}

func TestReplay_DetectaInconsistencias(t *testing.T) {
	now := time.Now()

	broken := entity.NewStockMovement("a", "p", entity.MovementTypeIN, 0, 20, nil, now)
	broken.NewQuantity = 21
	_, err := inventory.Replay("p", 21, []*entity.StockMovement{broken})
	assert.True(t, errors.Is(err, domain.ErrReconciliation))

	gap := []*entity.StockMovement{
		entity.NewStockMovement("a", "p", entity.MovementTypeIN, 0, 20, nil, now),
		entity.NewStockMovement("b", "p", entity.MovementTypeOUT, 18, -3, nil, now),
	}
	_, err = inventory.Replay("p", 15, gap)
	var rec *domain.ReconciliationError
	require.True(t, errors.As(err, &rec))
	assert.Equal(t, "p", rec.ProductID)

	ok := []*entity.StockMovement{entity.NewStockMovement("a", "p", entity.MovementTypeIN, 0, 20, nil, now)}
	_, err = inventory.Replay("p", 19, ok)
	assert.True(t, errors.Is(err, domain.ErrReconciliation))
}
