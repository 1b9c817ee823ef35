package ledger_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
)

type fakeAlerts struct {
	mu   sync.Mutex
	sent []ledger.LowStockAlert
	err  error
}

func (f *fakeAlerts) PublishLowStock(_ context.Context, a ledger.LowStockAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, a)
	return f.err
}

type fakeCache struct {
	mu          sync.Mutex
	invalidated int
	version     int64
	loadErr     error
	stored      map[string]int64
}

func (f *fakeCache) Load(context.Context, string, any) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version, false, f.loadErr
}

func (f *fakeCache) Store(_ context.Context, key string, ver int64, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored == nil {
		f.stored = map[string]int64{}
	}
	f.stored[key] = ver
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.version++
	return nil
}

func newLedger(t *testing.T) (*ledger.ProductLedger, *memory.Store, *fakeAlerts, *fakeCache) {
	t.Helper()
	s := memory.NewStore()
	alerts := &fakeAlerts{}
	cache := &fakeCache{}
	l := ledger.NewProductLedger(ledger.Deps{
		Tx:         s,
		Products:   s.Products(),
		Movements:  s.Movements(),
		Prices:     s.Prices(),
		References: s.References(),
		Users:      s.Users(),
		Reports:    s.Reports(),
		Cache:      cache,
		Alerts:     alerts,
		Logger:     zerolog.Nop(),
	})
	return l, s, alerts, cache
}

func widget(sku string) ledger.CreateProductInput {
	return ledger.CreateProductInput{
		SKU:          sku,
		Name:         "Widget " + sku,
		CostPrice:    decimal.RequireFromString("10.00"),
		SellingPrice: decimal.RequireFromString("15.00"),
		Thresholds:   entity.Thresholds{Minimum: 5, Maximum: 50, ReorderPoint: 10, ReorderQuantity: 20},
	}
}

func TestProductLedger_EndToEnd(t *testing.T) {
	ctx := context.Background()
	l, _, alerts, _ := newLedger(t)

	p, err := l.CreateProduct(ctx, widget("W-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.QuantityInStock)
	assert.Equal(t, "50", p.MarkupPercentage.String())

	res, err := l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeIN, Delta: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.Product.QuantityInStock)
	assert.Equal(t, inventory.StatusNormal, res.Status)
	assert.Equal(t, int64(0), res.Movement.PreviousQuantity)
	assert.Equal(t, int64(20), res.Movement.NewQuantity)

	movs, _, err := l.ListMovements(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)

	res, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeOUT, Delta: -15})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Product.QuantityInStock)
	assert.Equal(t, inventory.StatusReorderNeeded, res.Status)
	require.Len(t, alerts.sent, 1)
	assert.Equal(t, p.ID, alerts.sent[0].ProductID)
	assert.Equal(t, res.Movement.ID, alerts.sent[0].MovementID)

	_, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeOUT, Delta: -10})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := l.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.QuantityInStock)
	movs, _, err = l.ListMovements(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "el ajuste rechazado no registra movimiento")

	rec, err := l.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.ReplayedStock)
	assert.Equal(t, 2, rec.Movements)
}

func TestProductLedger_CreateProduct_InitialQuantityIsMovement(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)

	in := widget("W-2")
	in.InitialQuantity = 12
	p, err := l.CreateProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(12), p.QuantityInStock)

	movs, _, err := l.ListMovements(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIN, movs[0].Type)
	assert.Equal(t, int64(12), movs[0].QuantityChange)

	_, err = l.Reconcile(ctx, p.ID)
	assert.NoError(t, err)
}

func TestProductLedger_CreateProduct_AllViolations(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)

	in := widget("W-3")
	in.SellingPrice = decimal.NewFromInt(5)
	in.Thresholds.Maximum = 5
	_, err := l.CreateProduct(ctx, in)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, 0, len(ve.Violations))
	for _, v := range ve.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "selling_price")
	assert.Contains(t, fields, "maximum_stock_level")
}

func TestProductLedger_CreateProduct_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)

	first, err := l.CreateProduct(ctx, widget("DUP"))
	require.NoError(t, err)
	_, err = l.CreateProduct(ctx, widget("DUP"))
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "sku", ce.Field)

	got, err := l.GetProduct(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
}

func TestProductLedger_CreateProduct_UnknownReferences(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)

	in := widget("W-4")
	in.CategoryID = "no-existe"
	_, err := l.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = widget("W-5")
	in.CreatedBy = "fantasma"
	_, err = l.CreateProduct(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductLedger_CreateProduct_HookFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	l, s, _, _ := newLedger(t)

	in := widget("W-6")
	in.InitialQuantity = 3
	in.InTx = func(context.Context, ledger.TxRepos, *entity.Product, *entity.StockMovement) error {
		return errors.New("serial duplicado")
	}
	_, err := l.CreateProduct(ctx, in)
	require.Error(t, err)

	p, err := s.Products().GetBySKU(ctx, "W-6")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductLedger_AdjustQuantity_SignRules(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	p, err := l.CreateProduct(ctx, widget("W-7"))
	require.NoError(t, err)

	cases := []struct {
		name  string
		typ   entity.MovementType
		delta int64
	}{
		{"IN negativo", entity.MovementTypeIN, -1},
		{"OUT positivo", entity.MovementTypeOUT, 1},
		{"delta cero", entity.MovementTypeADJUSTMENT, 0},
		{"tipo desconocido", entity.MovementType("LOAN"), 1},
		{"traslado sin ubicaciones", entity.MovementTypeTRANSFER, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: tc.typ, Delta: tc.delta})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductLedger_AdjustQuantity_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	p, err := l.CreateProduct(ctx, widget("W-8"))
	require.NoError(t, err)
	_, err = l.Deactivate(ctx, p.ID)
	require.NoError(t, err)

	_, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeIN, Delta: 1})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasCode(domain.CodeInactive))
}

func TestProductLedger_AdjustQuantity_UnitCostValue(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	p, err := l.CreateProduct(ctx, widget("W-9"))
	require.NoError(t, err)

	cost := decimal.RequireFromString("2.50")
	res, err := l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeIN, Delta: 4, UnitCost: &cost})
	require.NoError(t, err)
	assert.True(t, res.Movement.TotalValue.Equal(decimal.NewFromInt(10)))

	res, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeADJUSTMENT, Delta: -2, UnitCost: &cost})
	require.NoError(t, err)
	assert.True(t, res.Movement.TotalValue.Equal(decimal.NewFromInt(5)))
}

func TestProductLedger_AdjustQuantity_RejectsSubCentUnitCost(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	p, err := l.CreateProduct(ctx, widget("W-CENT"))
	require.NoError(t, err)

	cost := decimal.RequireFromString("0.005")
	_, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeIN, Delta: 100, UnitCost: &cost})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "unit_cost", ve.Violations[0].Field)

	movs, _, err := l.ListMovements(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	_, _, err = l.UpdatePrices(ctx, ledger.UpdatePricesInput{
		ProductID:    p.ID,
		CostPrice:    decimal.RequireFromString("10.001"),
		SellingPrice: decimal.RequireFromString("15.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	history, err := l.PriceHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProductLedger_AdjustQuantity_RejectsQuantityOverflow(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	in := widget("W-MAX")
	in.InitialQuantity = 1
	p, err := l.CreateProduct(ctx, in)
	require.NoError(t, err)

	_, err = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeIN, Delta: math.MaxInt64})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.CodeOutOfRange, ve.Violations[0].Code)

	got, err := l.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.QuantityInStock)
}

func TestProductLedger_AdjustQuantity_ConcurrentWritersReconcile(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	in := widget("W-10")
	in.InitialQuantity = 50
	p, err := l.CreateProduct(ctx, in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			typ, delta := entity.MovementTypeIN, int64(3)
			if i%2 == 0 {
				typ, delta = entity.MovementTypeOUT, -2
			}
			_, _ = l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: typ, Delta: delta})
		}(i)
	}
	wg.Wait()

	got, err := l.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50+20*3-20*2), got.QuantityInStock)
	rec, err := l.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 41, rec.Movements)
}

func TestProductLedger_UpdatePrices_AppendsOneHistoryRow(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	p, err := l.CreateProduct(ctx, widget("W-11"))
	require.NoError(t, err)

	updated, entry, err := l.UpdatePrices(ctx, ledger.UpdatePricesInput{
		ProductID:    p.ID,
		CostPrice:    decimal.RequireFromString("12.00"),
		SellingPrice: decimal.RequireFromString("18.00"),
		Reason:       "proveedor subió precios",
	})
	require.NoError(t, err)
	assert.Equal(t, "50", updated.MarkupPercentage.String())
	assert.True(t, entry.OldCostPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, entry.NewCostPrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, entry.OldSellingPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, entry.NewSellingPrice.Equal(decimal.NewFromInt(18)))

	_, _, err = l.UpdatePrices(ctx, ledger.UpdatePricesInput{
		ProductID: p.ID, CostPrice: decimal.NewFromInt(18), SellingPrice: decimal.NewFromInt(18),
	})
	require.NoError(t, err)

	history, err := l.PriceHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	_, _, err = l.UpdatePrices(ctx, ledger.UpdatePricesInput{
		ProductID: p.ID, CostPrice: decimal.NewFromInt(20), SellingPrice: decimal.NewFromInt(18),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	history, err = l.PriceHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestProductLedger_UpdateDetails(t *testing.T) {
	ctx := context.Background()
	l, _, _, _ := newLedger(t)
	in := widget("W-12")
	in.InitialQuantity = 3
	p, err := l.CreateProduct(ctx, in)
	require.NoError(t, err)

	name := "Widget renombrado"
	reorder := int64(2)
	_, err = l.UpdateDetails(ctx, ledger.UpdateDetailsInput{ProductID: p.ID, Name: &name, ReorderPoint: &reorder})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reorden por debajo del mínimo")

	serialized := true
	_, err = l.UpdateDetails(ctx, ledger.UpdateDetailsInput{ProductID: p.ID, IsSerialized: &serialized})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se cambia el control por serial con stock")

	updated, err := l.UpdateDetails(ctx, ledger.UpdateDetailsInput{ProductID: p.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(3), updated.QuantityInStock)
}

func TestProductLedger_Feeds(t *testing.T) {
	ctx := context.Background()
	l, _, _, cache := newLedger(t)

	low, err := l.CreateProduct(ctx, widget("LOW"))
	require.NoError(t, err)
	ok := widget("OK")
	ok.InitialQuantity = 30
	_, err = l.CreateProduct(ctx, ok)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidated)

	feed, err := l.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, low.ID, feed[0].ID)

	groups, err := l.ValueSummary(ctx, inventory.GroupByCategory)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, inventory.UnassignedGroup, groups[0].GroupName)
	assert.Equal(t, 2, groups[0].ProductCount)
	assert.True(t, groups[0].TotalCostValue.Equal(decimal.NewFromInt(300)))

	_, err = l.ValueSummary(ctx, inventory.GroupBy("supplier"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stats, err := l.SummaryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, int64(30), stats.TotalQuantity)
}

func TestProductLedger_FeedsStoreUnderObservedVersion(t *testing.T) {
	ctx := context.Background()
	l, _, _, cache := newLedger(t)
	_, err := l.CreateProduct(ctx, widget("VER"))
	require.NoError(t, err)
	observed := cache.version

	_, err = l.ListLowStock(ctx)
	require.NoError(t, err)
	_, err = l.SummaryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, observed, cache.stored["low_stock"])
	assert.Equal(t, observed, cache.stored["summary"])

	cache.stored = nil
	cache.loadErr = errors.New("redis caído")
	_, err = l.ValueSummary(ctx, inventory.GroupByBrand)
	require.NoError(t, err)
	assert.Empty(t, cache.stored, "sin versión leída no se escribe en caché")
}

func TestProductLedger_AlertFailureDoesNotFailAdjustment(t *testing.T) {
	ctx := context.Background()
	l, _, alerts, _ := newLedger(t)
	alerts.err = errors.New("redis caído")
	in := widget("W-13")
	in.InitialQuantity = 20
	p, err := l.CreateProduct(ctx, in)
	require.NoError(t, err)

	res, err := l.AdjustQuantity(ctx, ledger.AdjustInput{ProductID: p.ID, Type: entity.MovementTypeOUT, Delta: -19})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Product.QuantityInStock)
	assert.Len(t, alerts.sent, 1)
}
