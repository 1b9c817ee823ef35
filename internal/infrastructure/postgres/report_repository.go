package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para los feeds.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LowStock productos activos con cantidad <= punto de reorden, mayor déficit primero.
func (r *ReportRepo) LowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND quantity_in_stock <= reorder_point
		ORDER BY (reorder_point - quantity_in_stock) DESC, sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ValueSummary agrega el valor del inventario activo por categoría o marca.
// Los productos sin categoría/marca quedan en el grupo UnassignedGroup.
func (r *ReportRepo) ValueSummary(ctx context.Context, by inventory.GroupBy) ([]inventory.ValueGroup, error) {
	column, table := "category_id", "categories"
	if by == inventory.GroupByBrand {
		column, table = "brand_id", "brands"
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(g.id::text, ''), COALESCE(g.name, $1),
		       COUNT(p.id), COALESCE(SUM(p.quantity_in_stock), 0),
		       COALESCE(SUM(p.quantity_in_stock * p.cost_price), 0),
		       COALESCE(SUM(p.quantity_in_stock * p.selling_price), 0),
		       ROUND(COALESCE(AVG(p.markup_percentage), 0), 2)
		FROM products p
		LEFT JOIN %s g ON g.id = p.%s
		WHERE p.is_active
		GROUP BY g.id, g.name
		ORDER BY 5 DESC, 2`, table, column)
	rows, err := r.q.Query(ctx, query, inventory.UnassignedGroup)
	if err != nil {
		return nil, fmt.Errorf("value summary: %w", err)
	}
	defer rows.Close()
	out := make([]inventory.ValueGroup, 0)
	for rows.Next() {
		var g inventory.ValueGroup
		if err := rows.Scan(&g.GroupID, &g.GroupName, &g.ProductCount, &g.TotalQuantity,
			&g.TotalCostValue, &g.TotalSellingValue, &g.AverageMarkup); err != nil {
			return nil, fmt.Errorf("scan value group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SummaryStats totales del inventario activo.
func (r *ReportRepo) SummaryStats(ctx context.Context) (inventory.SummaryStats, error) {
	var st inventory.SummaryStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(quantity_in_stock), 0),
		       COALESCE(SUM(quantity_in_stock * selling_price), 0), COUNT(DISTINCT category_id)
		FROM products WHERE is_active`).Scan(&st.TotalItems, &st.TotalQuantity, &st.TotalValue, &st.TotalCategories)
	if err != nil {
		return inventory.SummaryStats{}, fmt.Errorf("summary stats: %w", err)
	}
	return st, nil
}
