package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct lista movimientos del más reciente al más antiguo, paginado.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	// CountByProduct total de movimientos del producto (sin paginar).
	CountByProduct(ctx context.Context, productID string) (int, error)
	// History devuelve todos los movimientos del producto en orden de registro (para reconciliar).
	History(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
