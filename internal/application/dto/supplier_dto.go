package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	ContactName string `json:"contact_name" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=20"`
	Address     string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// LinkSupplierRequest body para POST /api/products/:id/suppliers.
type LinkSupplierRequest struct {
	SupplierID   string          `json:"supplier_id" validate:"required"`
	SupplierSKU  string          `json:"supplier_sku" validate:"max=100"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
	LeadTimeDays int             `json:"lead_time_days" validate:"min=0"`
	IsPreferred  bool            `json:"is_preferred"`
}

// ProductSupplierResponse vínculo producto-proveedor.
type ProductSupplierResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	SupplierSKU  string          `json:"supplier_sku,omitempty"`
	SupplierCost decimal.Decimal `json:"supplier_cost"`
	LeadTimeDays int             `json:"lead_time_days"`
	IsPreferred  bool            `json:"is_preferred"`
	CreatedAt    time.Time       `json:"created_at"`
}
