package ledger

import (
	"context"
	"errors"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// GetProduct obtiene un producto por ID.
func (l *ProductLedger) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := l.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return p, nil
}

// ListProducts lista productos filtrados (ordenados por nombre) y el total sin paginar.
func (l *ProductLedger) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int, error) {
	list, err := l.products.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := l.products.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListMovements movimientos del producto, más reciente primero, y el total sin paginar.
func (l *ProductLedger) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	if _, err := l.GetProduct(ctx, productID); err != nil {
		return nil, 0, err
	}
	list, err := l.movements.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := l.movements.CountByProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// PriceHistory historial de precios del producto.
func (l *ProductLedger) PriceHistory(ctx context.Context, productID string) ([]*entity.PriceHistory, error) {
	if _, err := l.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return l.prices.ListByProduct(ctx, productID)
}

// Reconcile reproduce el historial con la fila bloqueada, así un ajuste concurrente
// no produce un falso descuadre.
func (l *ProductLedger) Reconcile(ctx context.Context, productID string) (*inventory.ReplayResult, error) {
	var res *inventory.ReplayResult
	err := l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		p, err := repos.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", productID)
		}
		history, err := repos.Movements.History(ctx, productID)
		if err != nil {
			return err
		}
		res, err = inventory.Replay(productID, p.QuantityInStock, history)
		return err
	})
	if err != nil {
		var rerr *domain.ReconciliationError
		if errors.As(err, &rerr) {
			l.log.Error().Str("product_id", rerr.ProductID).Str("reason", rerr.Reason).Msg("descuadre de inventario")
		}
		return nil, err
	}
	return res, nil
}

// ListLowStock productos activos con cantidad <= punto de reorden (feed en caché si está configurada).
func (l *ProductLedger) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	ver, hit, cacheable := l.cached(ctx, cacheKeyLowStock, &out)
	if hit {
		return out, nil
	}
	out, err := l.reports.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	if cacheable {
		l.store(ctx, cacheKeyLowStock, ver, out)
	}
	return out, nil
}

// ValueSummary valor del inventario activo agrupado por categoría o marca.
func (l *ProductLedger) ValueSummary(ctx context.Context, by inventory.GroupBy) ([]inventory.ValueGroup, error) {
	if !by.Valid() {
		return nil, domain.NewValidationError("group_by", domain.CodeInvalid, "group_by debe ser category o brand")
	}
	key := cacheKeyValue + string(by)
	var out []inventory.ValueGroup
	ver, hit, cacheable := l.cached(ctx, key, &out)
	if hit {
		return out, nil
	}
	out, err := l.reports.ValueSummary(ctx, by)
	if err != nil {
		return nil, err
	}
	if cacheable {
		l.store(ctx, key, ver, out)
	}
	return out, nil
}

// SummaryStats totales generales del inventario.
func (l *ProductLedger) SummaryStats(ctx context.Context) (inventory.SummaryStats, error) {
	var out inventory.SummaryStats
	ver, hit, cacheable := l.cached(ctx, cacheKeySummary, &out)
	if hit {
		return out, nil
	}
	out, err := l.reports.SummaryStats(ctx)
	if err != nil {
		return inventory.SummaryStats{}, err
	}
	if cacheable {
		l.store(ctx, cacheKeySummary, ver, out)
	}
	return out, nil
}

// cached consulta la caché. cacheable es false sin caché o si no se pudo leer la versión.
func (l *ProductLedger) cached(ctx context.Context, key string, dst any) (ver int64, hit, cacheable bool) {
	if l.cache == nil {
		return 0, false, false
	}
	ver, hit, err := l.cache.Load(ctx, key, dst)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return 0, false, false
	}
	return ver, hit, true
}

func (l *ProductLedger) store(ctx context.Context, key string, ver int64, value any) {
	if err := l.cache.Store(ctx, key, ver, value); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}
