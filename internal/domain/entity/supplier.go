package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductSupplier relación producto-proveedor (única por par).
type ProductSupplier struct {
	ID           string
	ProductID    string
	SupplierID   string
	SupplierSKU  string
	IsPreferred  bool
	LeadTimeDays int
	SupplierCost decimal.Decimal
	CreatedAt    time.Time
}
