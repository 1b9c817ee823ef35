package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// Claves de caché de los feeds.
const (
	cacheKeyLowStock = "low_stock"
	cacheKeySummary  = "summary"
	cacheKeyValue    = "value:"
)

// Deps dependencias del ledger. Cache y Alerts son opcionales.
type Deps struct {
	Tx         TxRunner
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Prices     repository.PriceHistoryRepository
	References repository.ReferenceRepository
	Users      repository.UserRepository
	Reports    repository.ReportRepository
	Cache      FeedCache
	Alerts     AlertPublisher
	Logger     zerolog.Logger
	Now        func() time.Time
}

// ProductLedger dueño de los datos maestros de producto y del log append-only de movimientos.
// Es el único camino para modificar la cantidad en stock (AdjustQuantity).
type ProductLedger struct {
	tx         TxRunner
	products   repository.ProductRepository
	movements  repository.StockMovementRepository
	prices     repository.PriceHistoryRepository
	references repository.ReferenceRepository
	users      repository.UserRepository
	reports    repository.ReportRepository
	cache      FeedCache
	alerts     AlertPublisher
	log        zerolog.Logger
	now        func() time.Time
}

// NewProductLedger construye el ledger.
func NewProductLedger(d Deps) *ProductLedger {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &ProductLedger{
		tx:         d.Tx,
		products:   d.Products,
		movements:  d.Movements,
		prices:     d.Prices,
		references: d.References,
		users:      d.Users,
		reports:    d.Reports,
		cache:      d.Cache,
		alerts:     d.Alerts,
		log:        d.Logger,
		now:        now,
	}
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	SKU             string
	Name            string
	Description     string
	CategoryID      string
	BrandID         string
	LocationID      string
	UnitID          string
	CostPrice       decimal.Decimal
	SellingPrice    decimal.Decimal
	InitialQuantity int64
	Thresholds      entity.Thresholds
	IsSerialized    bool
	CreatedBy       string
	// InTx se ejecuta dentro de la misma transacción tras registrar el stock inicial
	// (initial es nil si la cantidad inicial es 0).
	InTx func(ctx context.Context, repos TxRepos, product *entity.Product, initial *entity.StockMovement) error
}

// CreateProduct valida todas las restricciones, inserta el producto con stock 0 y, si hay cantidad
// inicial, la registra como movimiento IN en la misma transacción.
func (l *ProductLedger) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if ve := inventory.ValidateNewProduct(in.SKU, in.Name, in.CostPrice, in.SellingPrice, in.Thresholds, in.InitialQuantity); !ve.Empty() {
		return nil, ve
	}
	if err := l.checkReferences(ctx, map[entity.ReferenceKind]string{
		entity.ReferenceCategory: in.CategoryID,
		entity.ReferenceBrand:    in.BrandID,
		entity.ReferenceLocation: in.LocationID,
		entity.ReferenceUnit:     in.UnitID,
	}); err != nil {
		return nil, err
	}
	if err := l.checkUser(ctx, in.CreatedBy); err != nil {
		return nil, err
	}
	existing, err := l.products.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("producto", "sku", in.SKU)
	}

	now := l.now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		BrandID:           in.BrandID,
		LocationID:        in.LocationID,
		UnitID:            in.UnitID,
		CostPrice:         in.CostPrice,
		SellingPrice:      in.SellingPrice,
		MarkupPercentage:  inventory.Markup(in.CostPrice, in.SellingPrice),
		QuantityInStock:   0,
		MinimumStockLevel: in.Thresholds.Minimum,
		MaximumStockLevel: in.Thresholds.Maximum,
		ReorderPoint:      in.Thresholds.ReorderPoint,
		ReorderQuantity:   in.Thresholds.ReorderQuantity,
		IsSerialized:      in.IsSerialized,
		IsActive:          true,
		CreatedBy:         in.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		var initial *entity.StockMovement
		if in.InitialQuantity > 0 {
			mov, err := l.applyMovement(ctx, repos, product, movementArgs{
				Type:   entity.MovementTypeIN,
				Delta:  in.InitialQuantity,
				Reason: "stock inicial",
				Actor:  in.CreatedBy,
				At:     now,
			})
			if err != nil {
				return err
			}
			initial = mov
		}
		if in.InTx != nil {
			return in.InTx(ctx, repos, product, initial)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.invalidate(ctx)
	return product, nil
}

// StockStatus derivación pura del estado de stock.
func (l *ProductLedger) StockStatus(p *entity.Product) inventory.StockStatus {
	return inventory.StatusOf(p)
}

// checkReferences verifica que las referencias no vacías existan.
func (l *ProductLedger) checkReferences(ctx context.Context, refs map[entity.ReferenceKind]string) error {
	for kind, id := range refs {
		if id == "" {
			continue
		}
		ref, err := l.references.GetByID(ctx, kind, id)
		if err != nil {
			return err
		}
		if ref == nil {
			return domain.NewNotFound(string(kind), id)
		}
	}
	return nil
}

// checkUser verifica que el actor exista (vacío = sin atribución).
func (l *ProductLedger) checkUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NewNotFound("usuario", userID)
	}
	return nil
}

// invalidate descarta los feeds en caché; un fallo solo se registra.
func (l *ProductLedger) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx); err != nil {
		l.log.Warn().Err(err).Msg("no se pudo invalidar la caché de feeds")
	}
}
