package inventory

import "github.com/jhoicas/inventory-tracker/internal/domain/entity"

// StockStatus clasificación derivada del stock de un producto.
type StockStatus string

const (
	StatusReorderNeeded StockStatus = "REORDER_NEEDED"
	StatusLowStock      StockStatus = "LOW_STOCK"
	StatusOverstock     StockStatus = "OVERSTOCK"
	StatusNormal        StockStatus = "NORMAL"
)

// ClassifyStock deriva el estado para una cantidad y umbrales dados.
// El orden de evaluación es fijo: reorden, luego mínimo, luego máximo.
// Como reorder_point >= minimum, REORDER_NEEDED absorbe la zona donde ambos aplican.
func ClassifyStock(quantity int64, t entity.Thresholds) StockStatus {
	switch {
	case quantity <= t.ReorderPoint:
		return StatusReorderNeeded
	case quantity <= t.Minimum:
		return StatusLowStock
	case quantity >= t.Maximum:
		return StatusOverstock
	default:
		return StatusNormal
	}
}

// StatusOf estado de stock de un producto (sin efectos secundarios).
func StatusOf(p *entity.Product) StockStatus {
	return ClassifyStock(p.QuantityInStock, p.Thresholds())
}

// NeedsReorder indica si el producto está en o bajo su punto de reorden.
func NeedsReorder(p *entity.Product) bool {
	return p.QuantityInStock <= p.ReorderPoint
}
