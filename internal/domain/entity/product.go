package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// QuantityInStock es un valor denormalizado: solo el ledger lo modifica, siempre
// junto con un StockMovement. MarkupPercentage se recalcula en cada escritura de precios.
type Product struct {
	ID                string
	SKU               string // único
	Name              string
	Description       string
	CategoryID        string // vacío si no tiene
	BrandID           string
	LocationID        string
	UnitID            string
	CostPrice         decimal.Decimal
	SellingPrice      decimal.Decimal
	MarkupPercentage  decimal.Decimal
	QuantityInStock   int64
	MinimumStockLevel int64
	MaximumStockLevel int64
	ReorderPoint      int64
	ReorderQuantity   int64
	IsSerialized      bool
	IsActive          bool
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Thresholds umbrales de stock de un producto.
type Thresholds struct {
	Minimum         int64
	Maximum         int64
	ReorderPoint    int64
	ReorderQuantity int64
}

// Thresholds devuelve los umbrales actuales del producto.
func (p *Product) Thresholds() Thresholds {
	return Thresholds{
		Minimum:         p.MinimumStockLevel,
		Maximum:         p.MaximumStockLevel,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
	}
}

// CostValue valor del stock a costo (cantidad × costo).
func (p *Product) CostValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(p.QuantityInStock))
}

// SellingValue valor del stock a precio de venta (cantidad × precio).
func (p *Product) SellingValue() decimal.Decimal {
	return p.SellingPrice.Mul(decimal.NewFromInt(p.QuantityInStock))
}
