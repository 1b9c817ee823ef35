package catalog

import (
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

func toProductResponse(p *entity.Product, categories, brands map[string]string) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		CategoryName:      categories[p.CategoryID],
		BrandID:           p.BrandID,
		BrandName:         brands[p.BrandID],
		LocationID:        p.LocationID,
		UnitID:            p.UnitID,
		CostPrice:         p.CostPrice,
		SellingPrice:      p.SellingPrice,
		MarkupPercentage:  p.MarkupPercentage,
		QuantityInStock:   p.QuantityInStock,
		MinimumStockLevel: p.MinimumStockLevel,
		MaximumStockLevel: p.MaximumStockLevel,
		ReorderPoint:      p.ReorderPoint,
		ReorderQuantity:   p.ReorderQuantity,
		StockStatus:       string(inventory.StatusOf(p)),
		IsSerialized:      p.IsSerialized,
		IsActive:          p.IsActive,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             string(m.Type),
		QuantityChange:   m.QuantityChange,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		UnitCost:         m.UnitCost,
		TotalValue:       m.TotalValue,
		FromLocationID:   m.FromLocationID,
		ToLocationID:     m.ToLocationID,
		Reference:        m.Reference,
		Reason:           m.Reason,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

func toPriceHistoryResponse(h *entity.PriceHistory) dto.PriceHistoryResponse {
	return dto.PriceHistoryResponse{
		ID:              h.ID,
		ProductID:       h.ProductID,
		OldCostPrice:    h.OldCostPrice,
		NewCostPrice:    h.NewCostPrice,
		OldSellingPrice: h.OldSellingPrice,
		NewSellingPrice: h.NewSellingPrice,
		Reason:          h.Reason,
		ChangedBy:       h.ChangedBy,
		ChangedAt:       h.ChangedAt,
	}
}

func toSerialResponse(s *entity.SerialNumber) dto.SerialResponse {
	return dto.SerialResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Serial:     s.Serial,
		Status:     string(s.Status),
		MovementID: s.MovementID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toLinkResponse(l *entity.ProductSupplier, supplierName string) dto.ProductSupplierResponse {
	return dto.ProductSupplierResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		SupplierID:   l.SupplierID,
		SupplierName: supplierName,
		SupplierSKU:  l.SupplierSKU,
		SupplierCost: l.SupplierCost,
		LeadTimeDays: l.LeadTimeDays,
		IsPreferred:  l.IsPreferred,
		CreatedAt:    l.CreatedAt,
	}
}

func toReferenceResponse(r *entity.Reference) dto.ReferenceResponse {
	return dto.ReferenceResponse{
		ID:          r.ID,
		Kind:        string(r.Kind),
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

func toLowStockItems(products []*entity.Product) []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.LowStockItemDTO{
			ProductID:       p.ID,
			SKU:             p.SKU,
			Name:            p.Name,
			QuantityInStock: p.QuantityInStock,
			ReorderPoint:    p.ReorderPoint,
			ReorderQuantity: p.ReorderQuantity,
			Deficit:         p.ReorderPoint - p.QuantityInStock,
			StockStatus:     string(inventory.StatusOf(p)),
		})
	}
	return out
}

func toValueGroups(groups []inventory.ValueGroup) []dto.ValueGroupDTO {
	out := make([]dto.ValueGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.ValueGroupDTO{
			GroupID:           g.GroupID,
			GroupName:         g.GroupName,
			ProductCount:      g.ProductCount,
			TotalQuantity:     g.TotalQuantity,
			TotalCostValue:    g.TotalCostValue,
			TotalSellingValue: g.TotalSellingValue,
			AverageMarkup:     g.AverageMarkup,
		})
	}
	return out
}

func toSummaryStats(s inventory.SummaryStats) dto.SummaryStatsDTO {
	return dto.SummaryStatsDTO{
		TotalItems:      s.TotalItems,
		TotalQuantity:   s.TotalQuantity,
		TotalValue:      s.TotalValue,
		TotalCategories: s.TotalCategories,
	}
}
