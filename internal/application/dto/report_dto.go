package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO producto en o bajo su punto de reorden.
type LowStockItemDTO struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	QuantityInStock int64  `json:"quantity_in_stock"`
	ReorderPoint    int64  `json:"reorder_point"`
	ReorderQuantity int64  `json:"reorder_quantity"`
	Deficit         int64  `json:"deficit"` // reorder_point - quantity
	StockStatus     string `json:"stock_status"`
}

// ValueGroupDTO fila del resumen de valor por categoría o marca.
type ValueGroupDTO struct {
	GroupID           string          `json:"group_id,omitempty"`
	GroupName         string          `json:"group_name"`
	ProductCount      int             `json:"product_count"`
	TotalQuantity     int64           `json:"total_quantity"`
	TotalCostValue    decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue decimal.Decimal `json:"total_selling_value"`
	AverageMarkup     decimal.Decimal `json:"average_markup"`
}

// SummaryStatsDTO respuesta de GET /api/reports/summary.
type SummaryStatsDTO struct {
	TotalItems      int             `json:"total_items"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCategories int             `json:"total_categories"`
}

// OverviewDTO respuesta de GET /api/reports/overview: todos los feeds en una llamada.
type OverviewDTO struct {
	Summary         SummaryStatsDTO   `json:"summary"`
	LowStock        []LowStockItemDTO `json:"low_stock"`
	ValueByCategory []ValueGroupDTO   `json:"value_by_category"`
	ValueByBrand    []ValueGroupDTO   `json:"value_by_brand"`
}
