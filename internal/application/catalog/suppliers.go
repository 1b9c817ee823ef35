package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// CreateSupplier registra un proveedor.
func (s *Service) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", domain.CodeRequired, "name es requerido")
	}
	now := time.Now()
	sup := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	out := toSupplierResponse(sup)
	return &out, nil
}

// ListSuppliers lista proveedores con paginación.
func (s *Service) ListSuppliers(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := s.suppliers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, sup := range list {
		items = append(items, toSupplierResponse(sup))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// LinkSupplier vincula un proveedor a un producto. Un par repetido es un conflicto;
// marcarlo como preferido quita la marca al preferido anterior.
func (s *Service) LinkSupplier(ctx context.Context, productID string, in dto.LinkSupplierRequest) (*dto.ProductSupplierResponse, error) {
	ve := &domain.ValidationError{}
	inventory.ValidateMoney(ve, "supplier_cost", in.SupplierCost, "el costo del proveedor")
	if in.LeadTimeDays < 0 {
		ve.Add("lead_time_days", domain.CodeNegative, "el tiempo de entrega no puede ser negativo")
	}
	if !ve.Empty() {
		return nil, ve
	}

	var (
		link         *entity.ProductSupplier
		supplierName string
	)
	err := s.tx.Run(ctx, func(ctx context.Context, repos ledger.TxRepos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", productID)
		}
		sup, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.NewNotFound("proveedor", in.SupplierID)
		}
		existing, err := repos.Suppliers.GetLink(ctx, productID, in.SupplierID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewConflict("producto-proveedor", "supplier_id", in.SupplierID)
		}
		if in.IsPreferred {
			if err := repos.Suppliers.ClearPreferred(ctx, productID); err != nil {
				return err
			}
		}
		link = &entity.ProductSupplier{
			ID:           uuid.New().String(),
			ProductID:    productID,
			SupplierID:   in.SupplierID,
			SupplierSKU:  in.SupplierSKU,
			IsPreferred:  in.IsPreferred,
			LeadTimeDays: in.LeadTimeDays,
			SupplierCost: in.SupplierCost,
			CreatedAt:    time.Now(),
		}
		supplierName = sup.Name
		return repos.Suppliers.Link(ctx, link)
	})
	if err != nil {
		return nil, err
	}
	out := toLinkResponse(link, supplierName)
	return &out, nil
}

// ListProductSuppliers proveedores vinculados al producto, preferido primero.
func (s *Service) ListProductSuppliers(ctx context.Context, productID string) ([]dto.ProductSupplierResponse, error) {
	if _, err := s.ledger.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	links, err := s.suppliers.ListLinks(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSupplierResponse, 0, len(links))
	for _, l := range links {
		var name string
		sup, err := s.suppliers.GetByID(ctx, l.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup != nil {
			name = sup.Name
		}
		out = append(out, toLinkResponse(l, name))
	}
	return out, nil
}
