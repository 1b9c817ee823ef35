package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// GroupBy dimensión de agrupación del resumen de valor.
type GroupBy string

const (
	GroupByCategory GroupBy = "category"
	GroupByBrand    GroupBy = "brand"
)

// Valid indica si la dimensión es soportada.
func (g GroupBy) Valid() bool {
	return g == GroupByCategory || g == GroupByBrand
}

// UnassignedGroup nombre del grupo para productos sin categoría o marca.
const UnassignedGroup = "Sin asignar"

// ValueGroup fila agregada del resumen de valor de inventario.
type ValueGroup struct {
	GroupID           string // vacío para UnassignedGroup
	GroupName         string
	ProductCount      int
	TotalQuantity     int64
	TotalCostValue    decimal.Decimal // Σ qty × costo
	TotalSellingValue decimal.Decimal // Σ qty × venta
	AverageMarkup     decimal.Decimal
}

// SummarizeValue agrega productos activos por la dimensión dada y ordena por valor a costo descendente.
// names resuelve ID de grupo → nombre.
func SummarizeValue(products []*entity.Product, by GroupBy, names map[string]string) []ValueGroup {
	groups := make(map[string]*ValueGroup)
	markups := make(map[string]decimal.Decimal)
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		key := p.CategoryID
		if by == GroupByBrand {
			key = p.BrandID
		}
		g, ok := groups[key]
		if !ok {
			name := UnassignedGroup
			if key != "" {
				name = names[key]
			}
			g = &ValueGroup{GroupID: key, GroupName: name, TotalCostValue: decimal.Zero, TotalSellingValue: decimal.Zero}
			groups[key] = g
		}
		g.ProductCount++
		g.TotalQuantity += p.QuantityInStock
		g.TotalCostValue = g.TotalCostValue.Add(p.CostValue())
		g.TotalSellingValue = g.TotalSellingValue.Add(p.SellingValue())
		markups[key] = markups[key].Add(p.MarkupPercentage)
	}

	out := make([]ValueGroup, 0, len(groups))
	for key, g := range groups {
		g.AverageMarkup = markups[key].Div(decimal.NewFromInt(int64(g.ProductCount))).Round(2)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TotalCostValue.Equal(out[j].TotalCostValue) {
			return out[i].TotalCostValue.GreaterThan(out[j].TotalCostValue)
		}
		return out[i].GroupName < out[j].GroupName
	})
	return out
}

// LowStock filtra productos activos en o bajo su punto de reorden,
// ordenados por mayor déficit y luego SKU.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsActive && NeedsReorder(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di := out[i].ReorderPoint - out[i].QuantityInStock
		dj := out[j].ReorderPoint - out[j].QuantityInStock
		if di != dj {
			return di > dj
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// SummaryStats estadísticas generales del inventario activo.
type SummaryStats struct {
	TotalItems      int
	TotalQuantity   int64
	TotalValue      decimal.Decimal // Σ qty × precio de venta
	TotalCategories int
}

// Stats calcula las estadísticas generales sobre productos activos.
func Stats(products []*entity.Product) SummaryStats {
	st := SummaryStats{TotalValue: decimal.Zero}
	categories := make(map[string]struct{})
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		st.TotalItems++
		st.TotalQuantity += p.QuantityInStock
		st.TotalValue = st.TotalValue.Add(p.SellingValue())
		if p.CategoryID != "" {
			categories[p.CategoryID] = struct{}{}
		}
	}
	st.TotalCategories = len(categories)
	return st
}
