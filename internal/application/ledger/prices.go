package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// UpdatePricesInput nuevos precios de un producto.
type UpdatePricesInput struct {
	ProductID    string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Reason       string
	Actor        string
}

// UpdatePrices registra exactamente una fila de historial con los pares anterior/nuevo
// y aplica los precios con el markup recalculado, todo en una sola transacción.
func (l *ProductLedger) UpdatePrices(ctx context.Context, in UpdatePricesInput) (*entity.Product, *entity.PriceHistory, error) {
	if ve := inventory.ValidatePrices(in.CostPrice, in.SellingPrice); !ve.Empty() {
		return nil, nil, ve
	}
	if err := l.checkUser(ctx, in.Actor); err != nil {
		return nil, nil, err
	}

	var (
		product *entity.Product
		entry   *entity.PriceHistory
	)
	err := l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", in.ProductID)
		}
		now := l.now()
		entry = &entity.PriceHistory{
			ID:              uuid.New().String(),
			ProductID:       p.ID,
			OldCostPrice:    p.CostPrice,
			NewCostPrice:    in.CostPrice,
			OldSellingPrice: p.SellingPrice,
			NewSellingPrice: in.SellingPrice,
			Reason:          in.Reason,
			ChangedBy:       in.Actor,
			ChangedAt:       now,
		}
		if err := repos.Prices.Create(ctx, entry); err != nil {
			return err
		}
		markup := inventory.Markup(in.CostPrice, in.SellingPrice)
		if err := repos.Products.UpdatePrices(ctx, p.ID, in.CostPrice, in.SellingPrice, markup, now); err != nil {
			return err
		}
		p.CostPrice = in.CostPrice
		p.SellingPrice = in.SellingPrice
		p.MarkupPercentage = markup
		p.UpdatedAt = now
		product = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.invalidate(ctx)
	return product, entry, nil
}
