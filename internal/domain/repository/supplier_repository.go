package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores y su relación con productos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Count(ctx context.Context) (int, error)

	// Link crea la relación producto-proveedor; un par repetido devuelve ConflictError.
	Link(ctx context.Context, link *entity.ProductSupplier) error
	GetLink(ctx context.Context, productID, supplierID string) (*entity.ProductSupplier, error)
	ListLinks(ctx context.Context, productID string) ([]*entity.ProductSupplier, error)
	// ClearPreferred quita la marca de preferido a todos los proveedores del producto.
	ClearPreferred(ctx context.Context, productID string) error
}
