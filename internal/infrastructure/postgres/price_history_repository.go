package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo historial de precios sobre PostgreSQL (append-only).
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create persiste una fila de historial.
func (r *PriceHistoryRepo) Create(ctx context.Context, h *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, product_id, old_cost_price, new_cost_price, old_selling_price, new_selling_price, reason, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.ProductID, h.OldCostPrice, h.NewCostPrice, h.OldSellingPrice, h.NewSellingPrice,
		h.Reason, nullable(h.ChangedBy), h.ChangedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "historial de precios", "id", h.ID); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create price history: %w", err)
	}
	return nil
}

// ListByProduct historial del producto, más reciente primero.
func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, product_id, old_cost_price, new_cost_price, old_selling_price, new_selling_price, reason, changed_by, changed_at
		FROM price_history WHERE product_id = $1 ORDER BY changed_at DESC, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PriceHistory, 0)
	for rows.Next() {
		var h entity.PriceHistory
		var changedBy *string
		if err := rows.Scan(&h.ID, &h.ProductID, &h.OldCostPrice, &h.NewCostPrice, &h.OldSellingPrice, &h.NewSellingPrice,
			&h.Reason, &changedBy, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		h.ChangedBy = deref(changedBy)
		list = append(list, &h)
	}
	return list, rows.Err()
}
