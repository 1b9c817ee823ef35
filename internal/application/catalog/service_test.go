package catalog_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func newService(t *testing.T) (*catalog.Service, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	l := ledger.NewProductLedger(ledger.Deps{
		Tx:         s,
		Products:   s.Products(),
		Movements:  s.Movements(),
		Prices:     s.Prices(),
		References: s.References(),
		Users:      s.Users(),
		Reports:    s.Reports(),
		Logger:     zerolog.Nop(),
	})
	svc := catalog.NewService(catalog.Deps{
		Ledger:     l,
		Tx:         s,
		Serials:    s.Serials(),
		Suppliers:  s.Suppliers(),
		References: s.References(),
		Users:      s.Users(),
		Defaults:   catalog.Defaults{MinimumStock: 5, MaximumStock: 100, ReorderPoint: 10, ReorderQuantity: 20, Unit: "unidad"},
		Logger:     zerolog.Nop(),
	})
	return svc, s
}

func serializedProduct(t *testing.T, svc *catalog.Service, sku string) *dto.ProductResponse {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), "", dto.CreateProductRequest{
		SKU: sku, Name: "Taladro " + sku,
		CostPrice: decimal.NewFromInt(100), SellingPrice: decimal.NewFromInt(150),
		MinimumStockLevel: 1, MaximumStockLevel: 20, ReorderPoint: 2, ReorderQuantity: 5,
		IsSerialized: true,
	})
	require.NoError(t, err)
	return p
}

func TestService_CreateItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Martillo de uña", Category: "Herramientas", Quantity: 12, Price: decimal.RequireFromString("25.50")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.SKU, "MARTIL-"))
	assert.True(t, first.CostPrice.IsZero())
	assert.True(t, first.SellingPrice.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, int64(12), first.QuantityInStock)
	assert.Equal(t, int64(10), first.ReorderPoint)
	assert.Equal(t, "Herramientas", first.CategoryName)
	assert.Equal(t, "NORMAL", first.StockStatus)

	second, err := svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Serrucho", Category: "herramientas", Quantity: 1, Price: decimal.NewFromInt(30)})
	require.NoError(t, err)
	assert.Equal(t, first.CategoryID, second.CategoryID, "la categoría se reutiliza por nombre")
	assert.Equal(t, "REORDER_NEEDED", second.StockStatus)

	cats, err := svc.ListReferences(ctx, entity.ReferenceCategory)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestService_CreateItem_CollectsViolations(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.CreateItem(context.Background(), "", dto.CreateItemRequest{Quantity: -1, Price: decimal.NewFromInt(-2)})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 4)
}

func TestService_RecordMovement_IssuesAndRetiresSerials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := serializedProduct(t, svc, "TAL-1")

	res, err := svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN", QuantityChange: 3, Serials: []string{"S-1", "S-2", "S-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Product.QuantityInStock)
	assert.Equal(t, []string{"S-1", "S-2", "S-3"}, res.Serials)

	res, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{ProductID: p.ID, Type: "IN", QuantityChange: 2})
	require.NoError(t, err)
	require.Len(t, res.Serials, 2)
	assert.True(t, strings.HasPrefix(res.Serials[0], "TAL-1-"))

	res, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "OUT", QuantityChange: -1, Serials: []string{"S-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Product.QuantityInStock)

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "ADJUSTMENT", QuantityChange: -1, Serials: []string{"S-3"},
	})
	require.NoError(t, err)

	sold, err := svc.ListSerials(ctx, p.ID, "SOLD")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "S-2", sold[0].Serial)
	damaged, err := svc.ListSerials(ctx, p.ID, "DAMAGED")
	require.NoError(t, err)
	require.Len(t, damaged, 1)
	assert.Equal(t, "S-3", damaged[0].Serial)
	inStock, err := svc.ListSerials(ctx, p.ID, "IN_STOCK")
	require.NoError(t, err)
	assert.Len(t, inStock, 3)

	rec, err := svc.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(3), rec.CurrentStock)
}

func TestService_RecordMovement_SerializedUnitsAreCapped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := serializedProduct(t, svc, "TAL-CAP")

	for _, delta := range []int64{1 << 62, catalog.DefaultMaxSerials + 1} {
		_, err := svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{ProductID: p.ID, Type: "IN", QuantityChange: delta})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "quantity_change", ve.Violations[0].Field)
		assert.Equal(t, domain.CodeOutOfRange, ve.Violations[0].Code)
	}

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.QuantityInStock)
	serials, err := svc.ListSerials(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Empty(t, serials)
	movs, err := svc.ListMovements(ctx, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, movs.Items)
}

func TestService_RecordMovement_SerialErrorsRollBack(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := serializedProduct(t, svc, "TAL-2")

	_, err := svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN", QuantityChange: 2, Serials: []string{"A-1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la cantidad de series no coincide")

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN", QuantityChange: 2, Serials: []string{"A-1", "A-2"},
	})
	require.NoError(t, err)

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN", QuantityChange: 1, Serials: []string{"A-1"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{ProductID: p.ID, Type: "OUT", QuantityChange: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una salida serializada exige las series")

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "OUT", QuantityChange: -1, Serials: []string{"NO-EXISTE"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.QuantityInStock)
	movs, err := svc.ListMovements(ctx, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs.Items, 1)

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "OUT", QuantityChange: -1, Serials: []string{"A-1"},
	})
	require.NoError(t, err)
	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "OUT", QuantityChange: -1, Serials: []string{"A-1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la serie ya no está en stock")
}

func TestService_RecordMovement_NonSerializedRejectsSerials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p, err := svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Clavos", Category: "Ferretería", Quantity: 10, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	_, err = svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN", QuantityChange: 1, Serials: []string{"X"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_UpdateSerialStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p := serializedProduct(t, svc, "TAL-3")
	_, err := svc.RecordMovement(ctx, "", dto.RegisterMovementRequest{ProductID: p.ID, Type: "IN", QuantityChange: 1, Serials: []string{"R-1"}})
	require.NoError(t, err)

	sn, err := svc.UpdateSerialStatus(ctx, "R-1", dto.UpdateSerialStatusRequest{Status: "RETURNED"})
	require.NoError(t, err)
	assert.Equal(t, "RETURNED", sn.Status)
	sn, err = svc.UpdateSerialStatus(ctx, "R-1", dto.UpdateSerialStatusRequest{Status: "IN_STOCK"})
	require.NoError(t, err)
	assert.Equal(t, "IN_STOCK", sn.Status)

	_, err = svc.UpdateSerialStatus(ctx, "R-1", dto.UpdateSerialStatusRequest{Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.UpdateSerialStatus(ctx, "R-404", dto.UpdateSerialStatusRequest{Status: "SOLD"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_LinkSupplier(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	p, err := svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Pintura", Category: "Acabados", Quantity: 4, Price: decimal.NewFromInt(40)})
	require.NoError(t, err)
	a, err := svc.CreateSupplier(ctx, dto.CreateSupplierRequest{Name: "Proveedor A"})
	require.NoError(t, err)
	b, err := svc.CreateSupplier(ctx, dto.CreateSupplierRequest{Name: "Proveedor B"})
	require.NoError(t, err)

	_, err = svc.LinkSupplier(ctx, p.ID, dto.LinkSupplierRequest{SupplierID: a.ID, IsPreferred: true, SupplierCost: decimal.NewFromInt(30)})
	require.NoError(t, err)
	_, err = svc.LinkSupplier(ctx, p.ID, dto.LinkSupplierRequest{SupplierID: a.ID})
	var ce *domain.ConflictError
	assert.ErrorAs(t, err, &ce)

	_, err = svc.LinkSupplier(ctx, p.ID, dto.LinkSupplierRequest{SupplierID: b.ID, IsPreferred: true})
	require.NoError(t, err)

	links, err := svc.ListProductSuppliers(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	preferred := 0
	for _, l := range links {
		if l.IsPreferred {
			preferred++
			assert.Equal(t, b.ID, l.SupplierID)
		}
	}
	assert.Equal(t, 1, preferred)

	_, err = svc.LinkSupplier(ctx, p.ID, dto.LinkSupplierRequest{SupplierID: "nadie"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.LinkSupplier(ctx, "nada", dto.LinkSupplierRequest{SupplierID: a.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ReferencesAndUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.CreateReference(ctx, entity.ReferenceBrand, dto.CreateReferenceRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = svc.CreateReference(ctx, entity.ReferenceBrand, dto.CreateReferenceRequest{Name: "acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = svc.CreateReference(ctx, entity.ReferenceKind("color"), dto.CreateReferenceRequest{Name: "Rojo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := svc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Email: "Ana@Example.com", FullName: "Ana Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{Username: "ana", Email: "otra@example.com", FullName: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	p, err := svc.CreateItem(ctx, u.ID, dto.CreateItemRequest{Name: "Lija", Category: "Acabados", Quantity: 1, Price: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.CreatedBy)
}

func TestService_Overview(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Brocha", Category: "Acabados", Quantity: 2, Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "", dto.CreateItemRequest{Name: "Taladro", Category: "Herramientas", Quantity: 50, Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	ov, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ov.Summary.TotalItems)
	assert.Equal(t, 2, ov.Summary.TotalCategories)
	assert.True(t, ov.Summary.TotalValue.Equal(decimal.NewFromInt(5010)))
	require.Len(t, ov.LowStock, 1)
	assert.Equal(t, int64(8), ov.LowStock[0].Deficit)
	assert.Len(t, ov.ValueByCategory, 2)
	require.Len(t, ov.ValueByBrand, 1)
	assert.Equal(t, "Sin asignar", ov.ValueByBrand[0].GroupName)
}

func TestService_ImportCSV_CollectsRowErrors(t *testing.T) {
	svc, _ := newService(t)
	res := svc.ImportCSV(context.Background(), "", []dto.CreateItemRequest{
		{Name: "Tornillo", Category: "Ferretería", Quantity: 100, Price: decimal.RequireFromString("0.10")},
		{Name: "", Category: "Ferretería", Quantity: 1, Price: decimal.NewFromInt(1)},
		{Name: "Tuerca", Category: "Ferretería", Quantity: 50, Price: decimal.RequireFromString("0.05")},
	})
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
}
