package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

func newProduct(id, sku, name string) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID: id, SKU: sku, Name: name,
		CostPrice: decimal.NewFromInt(10), SellingPrice: decimal.NewFromInt(15),
		MinimumStockLevel: 5, MaximumStockLevel: 100, ReorderPoint: 10, ReorderQuantity: 20,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
}

func TestStore_RunRollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "SKU-1", "Tornillo")))

	boom := errors.New("boom")
	err := s.Run(ctx, func(ctx context.Context, repos ledger.TxRepos) error {
		ok, err := repos.Products.ApplyQuantity(ctx, "p1", 0, 7, time.Now())
		require.NoError(t, err)
		require.True(t, ok)
		m := entity.NewStockMovement("m1", "p1", entity.MovementTypeIN, 0, 7, nil, time.Now())
		require.NoError(t, repos.Movements.Create(ctx, m))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.QuantityInStock)
	history, err := s.Movements().History(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_RunPanicRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "SKU-1", "Tornillo")))

	assert.PanicsWithValue(t, "fallo en medio de la transacción", func() {
		_ = s.Run(ctx, func(ctx context.Context, repos ledger.TxRepos) error {
			ok, err := repos.Products.ApplyQuantity(ctx, "p1", 0, 7, time.Now())
			require.NoError(t, err)
			require.True(t, ok)
			m := entity.NewStockMovement("m1", "p1", entity.MovementTypeIN, 0, 7, nil, time.Now())
			require.NoError(t, repos.Movements.Create(ctx, m))
			panic("fallo en medio de la transacción")
		})
	})

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.QuantityInStock)
	history, err := s.Movements().History(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, history)

	// El lock se liberó: una transacción posterior funciona.
	require.NoError(t, s.Run(ctx, func(context.Context, ledger.TxRepos) error { return nil }))
}

func TestProductRepository_ApplyQuantityCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "SKU-1", "Tornillo")))

	ok, err := s.Products().ApplyQuantity(ctx, "p1", 3, 8, time.Now())
	require.NoError(t, err)
	assert.False(t, ok, "la cantidad previa no coincide")

	ok, err = s.Products().ApplyQuantity(ctx, "p1", 0, 8, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProductRepository_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "SKU-1", "Tornillo")))
	err := s.Products().Create(ctx, newProduct("p2", "SKU-1", "Tuerca"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepository_ListFilterAndPagination(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	repo := s.Products()
	for _, p := range []*entity.Product{
		newProduct("p1", "SKU-1", "Tuerca"),
		newProduct("p2", "SKU-2", "Arandela"),
		newProduct("p3", "SKU-3", "Tornillo"),
	} {
		require.NoError(t, repo.Create(ctx, p))
	}
	require.NoError(t, repo.SetActive(ctx, "p1", false, time.Now()))

	all, err := repo.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Arandela", all[0].Name)

	active, err := repo.List(ctx, repository.ProductFilter{ActiveOnly: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Tornillo", active[0].Name)

	n, err := repo.Count(ctx, repository.ProductFilter{Search: "sku-"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSupplierRepository_LinkUniquePair(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Products().Create(ctx, newProduct("p1", "SKU-1", "Tornillo")))
	require.NoError(t, s.Suppliers().Create(ctx, &entity.Supplier{ID: "s1", Name: "Ferretería"}))

	link := &entity.ProductSupplier{ID: "l1", ProductID: "p1", SupplierID: "s1"}
	require.NoError(t, s.Suppliers().Link(ctx, link))
	err := s.Suppliers().Link(ctx, &entity.ProductSupplier{ID: "l2", ProductID: "p1", SupplierID: "s1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = s.Suppliers().Link(ctx, &entity.ProductSupplier{ID: "l3", ProductID: "p1", SupplierID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSerialNumberRepository_DuplicateInBatch(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	err := s.Serials().CreateBatch(ctx, []*entity.SerialNumber{
		{ID: "1", ProductID: "p1", Serial: "A", Status: entity.SerialInStock},
		{ID: "2", ProductID: "p1", Serial: "A", Status: entity.SerialInStock},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	list, err := s.Serials().ListByProduct(ctx, "p1", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
