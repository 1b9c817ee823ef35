package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	v view
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(d *state) error {
		for _, existing := range d.products {
			if existing.SKU == p.SKU {
				return domain.NewConflict("producto", "sku", p.SKU)
			}
		}
		d.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(d *state) {
		if p, ok := d.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByIDForUpdate equivale a GetByID: dentro de Run el lock ya es exclusivo.
func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(d *state) {
		for _, p := range d.products {
			if p.SKU == sku {
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	r.v.read(func(d *state) {
		out = filterProducts(d, f)
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *ProductRepository) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	var n int
	r.v.read(func(d *state) {
		n = len(filterProducts(d, f))
	})
	return n, nil
}

func filterProducts(d *state, f repository.ProductFilter) []*entity.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Product, 0, len(d.products))
	for _, p := range d.products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.BrandID != "" && p.BrandID != f.BrandID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func (r *ProductRepository) UpdateDetails(_ context.Context, p *entity.Product) error {
	return r.v.write(func(d *state) error {
		cur, ok := d.products[p.ID]
		if !ok {
			return domain.NewNotFound("producto", p.ID)
		}
		cur.Name = p.Name
		cur.Description = p.Description
		cur.CategoryID = p.CategoryID
		cur.BrandID = p.BrandID
		cur.LocationID = p.LocationID
		cur.UnitID = p.UnitID
		cur.MinimumStockLevel = p.MinimumStockLevel
		cur.MaximumStockLevel = p.MaximumStockLevel
		cur.ReorderPoint = p.ReorderPoint
		cur.ReorderQuantity = p.ReorderQuantity
		cur.IsSerialized = p.IsSerialized
		cur.UpdatedAt = p.UpdatedAt
		d.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepository) UpdatePrices(_ context.Context, id string, cost, selling, markup decimal.Decimal, at time.Time) error {
	return r.v.write(func(d *state) error {
		cur, ok := d.products[id]
		if !ok {
			return domain.NewNotFound("producto", id)
		}
		cur.CostPrice = cost
		cur.SellingPrice = selling
		cur.MarkupPercentage = markup
		cur.UpdatedAt = at
		d.products[id] = cur
		return nil
	})
}

func (r *ProductRepository) ApplyQuantity(_ context.Context, id string, previous, next int64, at time.Time) (bool, error) {
	applied := false
	err := r.v.write(func(d *state) error {
		cur, ok := d.products[id]
		if !ok || cur.QuantityInStock != previous {
			return nil
		}
		cur.QuantityInStock = next
		cur.UpdatedAt = at
		d.products[id] = cur
		applied = true
		return nil
	})
	return applied, err
}

func (r *ProductRepository) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	return r.v.write(func(d *state) error {
		cur, ok := d.products[id]
		if !ok {
			return domain.NewNotFound("producto", id)
		}
		cur.IsActive = active
		cur.UpdatedAt = at
		d.products[id] = cur
		return nil
	})
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
