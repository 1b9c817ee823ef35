package ledger

import (
	"context"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// UpdateDetailsInput campos opcionales (nil = no cambia). Cantidad y precios no se editan aquí.
type UpdateDetailsInput struct {
	ProductID         string
	Name              *string
	Description       *string
	CategoryID        *string
	BrandID           *string
	LocationID        *string
	UnitID            *string
	MinimumStockLevel *int64
	MaximumStockLevel *int64
	ReorderPoint      *int64
	ReorderQuantity   *int64
	IsSerialized      *bool
}

// UpdateDetails actualiza datos descriptivos y umbrales, re-validando los umbrales resultantes.
func (l *ProductLedger) UpdateDetails(ctx context.Context, in UpdateDetailsInput) (*entity.Product, error) {
	var product *entity.Product
	err := l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", in.ProductID)
		}
		refs := map[entity.ReferenceKind]string{}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.CategoryID != nil {
			p.CategoryID = *in.CategoryID
			refs[entity.ReferenceCategory] = p.CategoryID
		}
		if in.BrandID != nil {
			p.BrandID = *in.BrandID
			refs[entity.ReferenceBrand] = p.BrandID
		}
		if in.LocationID != nil {
			p.LocationID = *in.LocationID
			refs[entity.ReferenceLocation] = p.LocationID
		}
		if in.UnitID != nil {
			p.UnitID = *in.UnitID
			refs[entity.ReferenceUnit] = p.UnitID
		}
		if in.MinimumStockLevel != nil {
			p.MinimumStockLevel = *in.MinimumStockLevel
		}
		if in.MaximumStockLevel != nil {
			p.MaximumStockLevel = *in.MaximumStockLevel
		}
		if in.ReorderPoint != nil {
			p.ReorderPoint = *in.ReorderPoint
		}
		if in.ReorderQuantity != nil {
			p.ReorderQuantity = *in.ReorderQuantity
		}

		ve := inventory.ValidateThresholds(p.Thresholds())
		if p.Name == "" {
			ve.Add("name", domain.CodeRequired, "name es requerido")
		}
		if in.IsSerialized != nil && *in.IsSerialized != p.IsSerialized {
			if p.QuantityInStock > 0 {
				ve.Add("is_serialized", domain.CodeInvalid, "no se puede cambiar el control por serial con stock disponible")
			}
			p.IsSerialized = *in.IsSerialized
		}
		if !ve.Empty() {
			return ve
		}
		if err := l.checkReferences(ctx, refs); err != nil {
			return err
		}
		p.UpdatedAt = l.now()
		if err := repos.Products.UpdateDetails(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx)
	return product, nil
}

// Deactivate desactiva el producto (no hay borrado físico: el historial se conserva).
func (l *ProductLedger) Deactivate(ctx context.Context, productID string) (*entity.Product, error) {
	return l.setActive(ctx, productID, false)
}

// Activate reactiva un producto desactivado.
func (l *ProductLedger) Activate(ctx context.Context, productID string) (*entity.Product, error) {
	return l.setActive(ctx, productID, true)
}

func (l *ProductLedger) setActive(ctx context.Context, productID string, active bool) (*entity.Product, error) {
	var product *entity.Product
	err := l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", productID)
		}
		now := l.now()
		if err := repos.Products.SetActive(ctx, productID, active, now); err != nil {
			return err
		}
		p.IsActive = active
		p.UpdatedAt = now
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx)
	return product, nil
}
