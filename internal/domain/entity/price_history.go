package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registra cada cambio de precios de un producto (append-only).
type PriceHistory struct {
	ID              string
	ProductID       string
	OldCostPrice    decimal.Decimal
	NewCostPrice    decimal.Decimal
	OldSellingPrice decimal.Decimal
	NewSellingPrice decimal.Decimal
	Reason          string
	ChangedBy       string
	ChangedAt       time.Time
}
