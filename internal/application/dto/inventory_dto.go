package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// QuantityChange con signo: IN > 0, OUT < 0.
type RegisterMovementRequest struct {
	ProductID      string           `json:"product_id" validate:"required"`
	Type           string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT TRANSFER"`
	QuantityChange int64            `json:"quantity_change" validate:"required"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	FromLocationID string           `json:"from_location_id,omitempty"`
	ToLocationID   string           `json:"to_location_id,omitempty"`
	Reference      string           `json:"reference,omitempty" validate:"max=100"`
	Reason         string           `json:"reason,omitempty" validate:"max=500"`
	// Serials para productos serializados: las series que entran (opcional) o las que salen (obligatorio).
	Serials []string `json:"serials,omitempty" validate:"omitempty,dive,required,max=100"`
}

// MovementResponse un movimiento del ledger.
type MovementResponse struct {
	ID               string           `json:"id"`
	ProductID        string           `json:"product_id"`
	Type             string           `json:"type"`
	QuantityChange   int64            `json:"quantity_change"`
	PreviousQuantity int64            `json:"previous_quantity"`
	NewQuantity      int64            `json:"new_quantity"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalValue       decimal.Decimal  `json:"total_value"`
	FromLocationID   string           `json:"from_location_id,omitempty"`
	ToLocationID     string           `json:"to_location_id,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	Reason           string           `json:"reason,omitempty"`
	CreatedBy        string           `json:"created_by,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementResult resultado de registrar un movimiento.
type MovementResult struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
	Serials  []string         `json:"serials,omitempty"`
}

// SerialResponse un número de serie.
type SerialResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Serial     string    `json:"serial"`
	Status     string    `json:"status"`
	MovementID string    `json:"movement_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateSerialStatusRequest body para PATCH /api/serials/:serial.
type UpdateSerialStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=IN_STOCK SOLD DAMAGED RETURNED"`
}

// ReconciliationResponse resultado de reproducir el historial de un producto.
type ReconciliationResponse struct {
	ProductID     string `json:"product_id"`
	Movements     int    `json:"movements"`
	ReplayedStock int64  `json:"replayed_stock"`
	CurrentStock  int64  `json:"current_stock"`
	Consistent    bool   `json:"consistent"`
}
