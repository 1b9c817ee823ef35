package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto con todos sus datos maestros.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,max=100"`
	Name              string          `json:"name" validate:"required,max=200"`
	Description       string          `json:"description"`
	CategoryID        string          `json:"category_id" validate:"omitempty,uuid"`
	BrandID           string          `json:"brand_id" validate:"omitempty,uuid"`
	LocationID        string          `json:"location_id" validate:"omitempty,uuid"`
	UnitID            string          `json:"unit_id" validate:"omitempty,uuid"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	QuantityInStock   int64           `json:"quantity_in_stock"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	MaximumStockLevel int64           `json:"maximum_stock_level"`
	ReorderPoint      int64           `json:"reorder_point"`
	ReorderQuantity   int64           `json:"reorder_quantity"`
	IsSerialized      bool            `json:"is_serialized"`
	// Serials series del stock inicial de un producto serializado (opcional; si se omiten se generan).
	Serials []string `json:"serials,omitempty" validate:"omitempty,dive,required,max=100"`
}

// CreateItemRequest formulario simple de alta: nombre, categoría (por nombre), cantidad, precio y descripción.
type CreateItemRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni precios).
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string `json:"description"`
	CategoryID        *string `json:"category_id"`
	BrandID           *string `json:"brand_id"`
	LocationID        *string `json:"location_id"`
	UnitID            *string `json:"unit_id"`
	MinimumStockLevel *int64  `json:"minimum_stock_level"`
	MaximumStockLevel *int64  `json:"maximum_stock_level"`
	ReorderPoint      *int64  `json:"reorder_point"`
	ReorderQuantity   *int64  `json:"reorder_quantity"`
	IsSerialized      *bool   `json:"is_serialized"`
}

// UpdatePricesRequest body para PUT /api/products/:id/prices.
type UpdatePricesRequest struct {
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Reason       string          `json:"reason" validate:"max=500"`
}

// ProductFilterRequest query de GET /api/products.
type ProductFilterRequest struct {
	PageRequest
	CategoryID string `query:"category_id"`
	BrandID    string `query:"brand_id"`
	Search     string `query:"search" validate:"max=200"`
	ActiveOnly bool   `query:"active_only"`
}

// ProductResponse vista de detalle del producto con estado de stock y margen derivados.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	CategoryID        string          `json:"category_id,omitempty"`
	CategoryName      string          `json:"category_name,omitempty"`
	BrandID           string          `json:"brand_id,omitempty"`
	BrandName         string          `json:"brand_name,omitempty"`
	LocationID        string          `json:"location_id,omitempty"`
	UnitID            string          `json:"unit_id,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	MarkupPercentage  decimal.Decimal `json:"markup_percentage"`
	QuantityInStock   int64           `json:"quantity_in_stock"`
	MinimumStockLevel int64           `json:"minimum_stock_level"`
	MaximumStockLevel int64           `json:"maximum_stock_level"`
	ReorderPoint      int64           `json:"reorder_point"`
	ReorderQuantity   int64           `json:"reorder_quantity"`
	StockStatus       string          `json:"stock_status"`
	IsSerialized      bool            `json:"is_serialized"`
	IsActive          bool            `json:"is_active"`
	CreatedBy         string          `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceHistoryResponse una fila del historial de precios.
type PriceHistoryResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	OldCostPrice    decimal.Decimal `json:"old_cost_price"`
	NewCostPrice    decimal.Decimal `json:"new_cost_price"`
	OldSellingPrice decimal.Decimal `json:"old_selling_price"`
	NewSellingPrice decimal.Decimal `json:"new_selling_price"`
	Reason          string          `json:"reason,omitempty"`
	ChangedBy       string          `json:"changed_by,omitempty"`
	ChangedAt       time.Time       `json:"changed_at"`
}

// ImportResult resultado de una carga masiva: filas creadas y errores por fila.
type ImportResult struct {
	Created int              `json:"created"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError error de una fila (numeración desde 1, sin contar encabezado).
type ImportRowError struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Message string `json:"message"`
}
