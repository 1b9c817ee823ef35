package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const (
	supplierColumns = `id, name, contact_name, email, phone, address, is_active, created_at, updated_at`
	linkColumns     = `id, product_id, supplier_id, supplier_sku, is_preferred, lead_time_days, supplier_cost, created_at`
)

// SupplierRepo proveedores y vínculos producto-proveedor sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.ContactName, s.Email, s.Phone, s.Address, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, "proveedor", "id", s.ID); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores por nombre con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Supplier, 0)
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.Address, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count total de proveedores.
func (r *SupplierRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}

// Link crea el vínculo producto-proveedor; el par es único.
func (r *SupplierRepo) Link(ctx context.Context, l *entity.ProductSupplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO product_suppliers (`+linkColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.ProductID, l.SupplierID, l.SupplierSKU, l.IsPreferred, l.LeadTimeDays, l.SupplierCost, l.CreatedAt)
	if err != nil {
		if mapped := mapWriteError(err, "producto-proveedor", "supplier_id", l.SupplierID); mapped != nil {
			return mapped
		}
		return fmt.Errorf("link supplier: %w", err)
	}
	return nil
}

// GetLink obtiene el vínculo de un par producto-proveedor.
func (r *SupplierRepo) GetLink(ctx context.Context, productID, supplierID string) (*entity.ProductSupplier, error) {
	l, err := scanLink(r.q.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM product_suppliers WHERE product_id = $1 AND supplier_id = $2`, productID, supplierID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product supplier: %w", err)
	}
	return l, nil
}

// ListLinks vínculos del producto, preferido primero.
func (r *SupplierRepo) ListLinks(ctx context.Context, productID string) ([]*entity.ProductSupplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+linkColumns+` FROM product_suppliers WHERE product_id = $1 ORDER BY is_preferred DESC, created_at`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product suppliers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ProductSupplier, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product supplier: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ClearPreferred quita la marca de preferido a los vínculos del producto.
func (r *SupplierRepo) ClearPreferred(ctx context.Context, productID string) error {
	_, err := r.q.Exec(ctx, `UPDATE product_suppliers SET is_preferred = FALSE WHERE product_id = $1 AND is_preferred`, productID)
	if err != nil {
		return fmt.Errorf("clear preferred supplier: %w", err)
	}
	return nil
}

func scanLink(row pgx.Row) (*entity.ProductSupplier, error) {
	var l entity.ProductSupplier
	if err := row.Scan(&l.ID, &l.ProductID, &l.SupplierID, &l.SupplierSKU, &l.IsPreferred, &l.LeadTimeDays, &l.SupplierCost, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
