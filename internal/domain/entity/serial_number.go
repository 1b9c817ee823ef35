package entity

import "time"

// SerialStatus estado de una unidad serializada.
type SerialStatus string

// Estados posibles de un número de serie.
const (
	SerialInStock  SerialStatus = "IN_STOCK"
	SerialSold     SerialStatus = "SOLD"
	SerialDamaged  SerialStatus = "DAMAGED"
	SerialReturned SerialStatus = "RETURNED"
)

// Valid indica si el estado es uno de los conocidos.
func (s SerialStatus) Valid() bool {
	switch s {
	case SerialInStock, SerialSold, SerialDamaged, SerialReturned:
		return true
	}
	return false
}

// SerialNumber una unidad física de un producto serializado.
type SerialNumber struct {
	ID         string
	ProductID  string
	Serial     string // único global
	Status     SerialStatus
	MovementID string // movimiento que la dio de alta
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
