package inventory

import (
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ReplayResult resultado de reproducir el historial de movimientos de un producto.
type ReplayResult struct {
	Movements     int
	ReplayedStock int64
	CurrentStock  int64
	FirstMovement string
	LastMovement  string
}

// Replay reproduce los movimientos (en orden cronológico) y verifica que:
// cada movimiento cuadre (new = previous + delta, total = |delta| × costo),
// la cadena sea continua (previous = new del anterior, empezando en 0) y
// la suma de deltas sea igual al stock actual.
func Replay(productID string, current int64, movements []*entity.StockMovement) (*ReplayResult, error) {
	res := &ReplayResult{Movements: len(movements), CurrentStock: current}
	var running int64
	for i, m := range movements {
		if !m.Reconciles() {
			return nil, &domain.ReconciliationError{
				ProductID: productID, Previous: m.PreviousQuantity, Delta: m.QuantityChange, New: m.NewQuantity,
				Reason: fmt.Sprintf("movimiento %s no cuadra", m.ID),
			}
		}
		if m.PreviousQuantity != running {
			return nil, &domain.ReconciliationError{
				ProductID: productID, Previous: m.PreviousQuantity, Delta: m.QuantityChange, New: m.NewQuantity,
				Reason: fmt.Sprintf("movimiento %d (%s) rompe la cadena: se esperaba anterior=%d", i, m.ID, running),
			}
		}
		running += m.QuantityChange
		if i == 0 {
			res.FirstMovement = m.ID
		}
		res.LastMovement = m.ID
	}
	res.ReplayedStock = running
	if running != current {
		return nil, &domain.ReconciliationError{
			ProductID: productID, Previous: current, New: running,
			Reason: "la suma de movimientos no coincide con el stock actual",
		}
	}
	return res, nil
}
