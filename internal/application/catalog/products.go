package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// CreateProduct crea un producto con todos sus datos maestros. Para productos serializados
// con stock inicial emite las series dentro de la misma transacción.
func (s *Service) CreateProduct(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	input := ledger.CreateProductInput{
		SKU:             strings.TrimSpace(in.SKU),
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		BrandID:         in.BrandID,
		LocationID:      in.LocationID,
		UnitID:          in.UnitID,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		InitialQuantity: in.QuantityInStock,
		Thresholds: entity.Thresholds{
			Minimum:         in.MinimumStockLevel,
			Maximum:         in.MaximumStockLevel,
			ReorderPoint:    in.ReorderPoint,
			ReorderQuantity: in.ReorderQuantity,
		},
		IsSerialized: in.IsSerialized,
		CreatedBy:    actor,
	}
	if len(in.Serials) > 0 && !in.IsSerialized {
		return nil, domain.NewValidationError("serials", domain.CodeInvalid, "el producto no maneja números de serie")
	}
	if in.IsSerialized {
		input.InTx = func(ctx context.Context, repos ledger.TxRepos, p *entity.Product, initial *entity.StockMovement) error {
			if initial == nil {
				if len(in.Serials) > 0 {
					return domain.NewValidationError("serials", domain.CodeOutOfRange, "no hay stock inicial para asignar series")
				}
				return nil
			}
			_, err := issueSerials(ctx, repos, p, initial, in.Serials)
			return err
		}
	}
	p, err := s.ledger.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// CreateItem alta desde el formulario simple: la categoría se resuelve por nombre (se crea si no
// existe), el SKU se genera a partir del nombre, el costo inicia en 0 y los umbrales salen de Defaults.
func (s *Service) CreateItem(ctx context.Context, actor string, in dto.CreateItemRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	ve := &domain.ValidationError{}
	if name == "" {
		ve.Add("name", domain.CodeRequired, "name es requerido")
	}
	if category == "" {
		ve.Add("category", domain.CodeRequired, "category es requerido")
	}
	if in.Quantity < 0 {
		ve.Add("quantity", domain.CodeNegative, "la cantidad no puede ser negativa")
	}
	if in.Price.IsNegative() {
		ve.Add("price", domain.CodeNegative, "el precio no puede ser negativo")
	}
	if !ve.Empty() {
		return nil, ve
	}

	cat, err := s.resolveReference(ctx, entity.ReferenceCategory, category)
	if err != nil {
		return nil, err
	}
	var unitID string
	if s.defaults.Unit != "" {
		unit, err := s.resolveReference(ctx, entity.ReferenceUnit, s.defaults.Unit)
		if err != nil {
			return nil, err
		}
		unitID = unit.ID
	}

	p, err := s.ledger.CreateProduct(ctx, ledger.CreateProductInput{
		SKU:             generateSKU(name),
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		CategoryID:      cat.ID,
		UnitID:          unitID,
		CostPrice:       decimal.Zero,
		SellingPrice:    in.Price,
		InitialQuantity: in.Quantity,
		Thresholds: entity.Thresholds{
			Minimum:         s.defaults.MinimumStock,
			Maximum:         s.defaults.MaximumStock,
			ReorderPoint:    s.defaults.ReorderPoint,
			ReorderQuantity: s.defaults.ReorderQuantity,
		},
		CreatedBy: actor,
	})
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// GetProduct obtiene un producto con su estado de stock.
func (s *Service) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ledger.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// List vista de detalle de productos con estado de stock y margen.
func (s *Service) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := s.ledger.ListProducts(ctx, repository.ProductFilter{
		CategoryID: in.CategoryID,
		BrandID:    in.BrandID,
		Search:     in.Search,
		ActiveOnly: in.ActiveOnly,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	categories, err := s.referenceNames(ctx, entity.ReferenceCategory)
	if err != nil {
		return nil, err
	}
	brands, err := s.referenceNames(ctx, entity.ReferenceBrand)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p, categories, brands))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpdateProduct actualiza datos descriptivos y umbrales.
func (s *Service) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.ledger.UpdateDetails(ctx, ledger.UpdateDetailsInput{
		ProductID:         id,
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		BrandID:           in.BrandID,
		LocationID:        in.LocationID,
		UnitID:            in.UnitID,
		MinimumStockLevel: in.MinimumStockLevel,
		MaximumStockLevel: in.MaximumStockLevel,
		ReorderPoint:      in.ReorderPoint,
		ReorderQuantity:   in.ReorderQuantity,
		IsSerialized:      in.IsSerialized,
	})
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// UpdatePrices cambia costo y precio de venta dejando una fila de historial.
func (s *Service) UpdatePrices(ctx context.Context, actor, id string, in dto.UpdatePricesRequest) (*dto.ProductResponse, error) {
	p, _, err := s.ledger.UpdatePrices(ctx, ledger.UpdatePricesInput{
		ProductID:    id,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Reason:       in.Reason,
		Actor:        actor,
	})
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// Deactivate desactiva el producto; su historial se conserva.
func (s *Service) Deactivate(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ledger.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// Activate reactiva un producto.
func (s *Service) Activate(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ledger.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.productResponse(ctx, p)
}

// PriceHistory historial de precios del producto, más reciente primero.
func (s *Service) PriceHistory(ctx context.Context, productID string) ([]dto.PriceHistoryResponse, error) {
	list, err := s.ledger.PriceHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, toPriceHistoryResponse(h))
	}
	return out, nil
}

// ListMovements movimientos del producto, paginados.
func (s *Service) ListMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	list, total, err := s.ledger.ListMovements(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Reconcile verifica que el stock del producto coincida con la reproducción de sus movimientos.
func (s *Service) Reconcile(ctx context.Context, productID string) (*dto.ReconciliationResponse, error) {
	res, err := s.ledger.Reconcile(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		ProductID:     productID,
		Movements:     res.Movements,
		ReplayedStock: res.ReplayedStock,
		CurrentStock:  res.CurrentStock,
		Consistent:    res.ReplayedStock == res.CurrentStock,
	}, nil
}

func (s *Service) productResponse(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	categories := map[string]string{}
	brands := map[string]string{}
	if p.CategoryID != "" {
		ref, err := s.references.GetByID(ctx, entity.ReferenceCategory, p.CategoryID)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			categories[ref.ID] = ref.Name
		}
	}
	if p.BrandID != "" {
		ref, err := s.references.GetByID(ctx, entity.ReferenceBrand, p.BrandID)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			brands[ref.ID] = ref.Name
		}
	}
	out := toProductResponse(p, categories, brands)
	return &out, nil
}

func (s *Service) referenceNames(ctx context.Context, kind entity.ReferenceKind) (map[string]string, error) {
	refs, err := s.references.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(refs))
	for _, r := range refs {
		names[r.ID] = r.Name
	}
	return names, nil
}

// resolveReference busca la referencia por nombre y la crea si no existe.
func (s *Service) resolveReference(ctx context.Context, kind entity.ReferenceKind, name string) (*entity.Reference, error) {
	ref, err := s.references.GetByName(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		return ref, nil
	}
	ref = &entity.Reference{ID: uuid.New().String(), Kind: kind, Name: name, CreatedAt: time.Now()}
	if err := s.references.Create(ctx, ref); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// creada en paralelo por otra petición
			return s.references.GetByName(ctx, kind, name)
		}
		return nil, err
	}
	return ref, nil
}

// generateSKU prefijo alfanumérico del nombre (hasta 6 caracteres) más un sufijo aleatorio.
func generateSKU(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == 6 {
				break
			}
		}
	}
	prefix := b.String()
	if prefix == "" {
		prefix = "ITEM"
	}
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}
