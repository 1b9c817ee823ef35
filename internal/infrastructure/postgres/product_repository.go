package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category_id, brand_id, location_id, unit_id,
	cost_price, selling_price, markup_percentage, quantity_in_stock,
	minimum_stock_level, maximum_stock_level, reorder_point, reorder_quantity,
	is_serialized, is_active, created_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description,
		nullable(p.CategoryID), nullable(p.BrandID), nullable(p.LocationID), nullable(p.UnitID),
		p.CostPrice, p.SellingPrice, p.MarkupPercentage, p.QuantityInStock,
		p.MinimumStockLevel, p.MaximumStockLevel, p.ReorderPoint, p.ReorderQuantity,
		p.IsSerialized, p.IsActive, nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "producto", "sku", p.SKU); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos filtrados, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	where, args := productWhere(f)
	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY name, sku`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Count total de productos que cumplen el filtro (sin paginar).
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	where, args := productWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func productWhere(f repository.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	if (f.CategoryID != "" && !isUUID(f.CategoryID)) || (f.BrandID != "" && !isUUID(f.BrandID)) {
		return " WHERE FALSE", nil
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.BrandID != "" {
		args = append(args, f.BrandID)
		conds = append(conds, fmt.Sprintf("brand_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d)", n, n, n))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// UpdateDetails actualiza datos descriptivos y umbrales. No toca cantidad ni precios.
func (r *ProductRepo) UpdateDetails(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = $4, brand_id = $5, location_id = $6, unit_id = $7,
			minimum_stock_level = $8, maximum_stock_level = $9, reorder_point = $10, reorder_quantity = $11,
			is_serialized = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description,
		nullable(p.CategoryID), nullable(p.BrandID), nullable(p.LocationID), nullable(p.UnitID),
		p.MinimumStockLevel, p.MaximumStockLevel, p.ReorderPoint, p.ReorderQuantity,
		p.IsSerialized, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err, "producto", "id", p.ID); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdatePrices escribe precios y markup juntos.
func (r *ProductRepo) UpdatePrices(ctx context.Context, id string, cost, selling, markup decimal.Decimal, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET cost_price = $2, selling_price = $3, markup_percentage = $4, updated_at = $5 WHERE id = $1`,
		id, cost, selling, markup, at,
	)
	if err != nil {
		if mapped := mapWriteError(err, "producto", "id", id); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update product prices: %w", err)
	}
	return nil
}

// ApplyQuantity compare-and-set sobre quantity_in_stock.
func (r *ProductRepo) ApplyQuantity(ctx context.Context, id string, previous, next int64, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity_in_stock = $3, updated_at = $4 WHERE id = $1 AND quantity_in_stock = $2`,
		id, previous, next, at,
	)
	if err != nil {
		return false, fmt.Errorf("apply product quantity: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// SetActive activa o desactiva el producto.
func (r *ProductRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET is_active = $2, updated_at = $3 WHERE id = $1`, id, active, at)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, brandID, locationID, unitID, createdBy *string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &categoryID, &brandID, &locationID, &unitID,
		&p.CostPrice, &p.SellingPrice, &p.MarkupPercentage, &p.QuantityInStock,
		&p.MinimumStockLevel, &p.MaximumStockLevel, &p.ReorderPoint, &p.ReorderQuantity,
		&p.IsSerialized, &p.IsActive, &createdBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	p.BrandID = deref(brandID)
	p.LocationID = deref(locationID)
	p.UnitID = deref(unitID)
	p.CreatedBy = deref(createdBy)
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
