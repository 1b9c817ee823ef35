package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// PriceHistoryRepository define el puerto de persistencia para el historial de precios (append-only).
type PriceHistoryRepository interface {
	Create(ctx context.Context, entry *entity.PriceHistory) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.PriceHistory, error)
}
