package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	CategoryID string
	BrandID    string
	Search     string // coincide en nombre, descripción o SKU
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// No existe escritura directa de la cantidad: ApplyQuantity es un compare-and-set
// que solo invoca el ledger junto con el registro del movimiento.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	// UpdateDetails actualiza campos descriptivos, referencias y umbrales. No toca cantidad ni precios.
	UpdateDetails(ctx context.Context, product *entity.Product) error
	UpdatePrices(ctx context.Context, productID string, cost, selling, markup decimal.Decimal, at time.Time) error
	// ApplyQuantity fija la cantidad a next solo si la actual es previous. Devuelve false si no aplicó.
	ApplyQuantity(ctx context.Context, productID string, previous, next int64, at time.Time) (bool, error)
	SetActive(ctx context.Context, productID string, active bool, at time.Time) error
}
