package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado entre ubicaciones
)

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// StockMovement registro inmutable de un cambio de cantidad.
// Se crea exactamente una vez por cambio; nunca se modifica ni se elimina.
type StockMovement struct {
	ID               string
	ProductID        string
	Type             MovementType
	QuantityChange   int64 // con signo
	PreviousQuantity int64
	NewQuantity      int64
	UnitCost         *decimal.Decimal
	TotalValue       decimal.Decimal // |QuantityChange| × UnitCost
	FromLocationID   string
	ToLocationID     string
	Reference        string
	Reason           string
	CreatedBy        string
	CreatedAt        time.Time
}

// NewStockMovement construye el movimiento calculando NewQuantity y TotalValue
// a partir de la cantidad previa capturada en el momento de la mutación.
func NewStockMovement(id, productID string, typ MovementType, previous, delta int64, unitCost *decimal.Decimal, now time.Time) *StockMovement {
	return &StockMovement{
		ID:               id,
		ProductID:        productID,
		Type:             typ,
		QuantityChange:   delta,
		PreviousQuantity: previous,
		NewQuantity:      previous + delta,
		UnitCost:         unitCost,
		TotalValue:       MovementValue(delta, unitCost),
		CreatedAt:        now,
	}
}

// MovementValue |delta| × costo unitario (0 si no hay costo).
func MovementValue(delta int64, unitCost *decimal.Decimal) decimal.Decimal {
	if unitCost == nil {
		return decimal.Zero
	}
	if delta < 0 {
		delta = -delta
	}
	return unitCost.Mul(decimal.NewFromInt(delta))
}

// Reconciles verifica new = previous + delta y que TotalValue corresponda al costo.
func (m *StockMovement) Reconciles() bool {
	if m.NewQuantity != m.PreviousQuantity+m.QuantityChange {
		return false
	}
	return m.TotalValue.Equal(MovementValue(m.QuantityChange, m.UnitCost))
}
