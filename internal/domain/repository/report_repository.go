package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// ReportRepository consultas de solo lectura para los feeds de reportes.
type ReportRepository interface {
	// LowStock productos activos con cantidad <= punto de reorden, mayor déficit primero.
	LowStock(ctx context.Context) ([]*entity.Product, error)
	// ValueSummary agrega el valor del inventario activo por categoría o marca.
	ValueSummary(ctx context.Context, by inventory.GroupBy) ([]inventory.ValueGroup, error)
	SummaryStats(ctx context.Context) (inventory.SummaryStats, error)
}
