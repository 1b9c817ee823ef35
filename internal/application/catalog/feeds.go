package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// LowStockFeed productos en o bajo su punto de reorden.
func (s *Service) LowStockFeed(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	list, err := s.ledger.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toLowStockItems(list), nil
}

// ValueSummaryFeed valor de inventario agrupado por category o brand.
func (s *Service) ValueSummaryFeed(ctx context.Context, groupBy string) ([]dto.ValueGroupDTO, error) {
	groups, err := s.ledger.ValueSummary(ctx, inventory.GroupBy(groupBy))
	if err != nil {
		return nil, err
	}
	return toValueGroups(groups), nil
}

// SummaryStats totales generales.
func (s *Service) SummaryStats(ctx context.Context) (*dto.SummaryStatsDTO, error) {
	st, err := s.ledger.SummaryStats(ctx)
	if err != nil {
		return nil, err
	}
	out := toSummaryStats(st)
	return &out, nil
}

// Overview arma todos los feeds en paralelo; el primer error cancela el resto.
func (s *Service) Overview(ctx context.Context) (*dto.OverviewDTO, error) {
	var out dto.OverviewDTO
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.SummaryStats(ctx)
		if err != nil {
			return err
		}
		out.Summary = *st
		return nil
	})
	g.Go(func() error {
		low, err := s.LowStockFeed(ctx)
		out.LowStock = low
		return err
	})
	g.Go(func() error {
		groups, err := s.ValueSummaryFeed(ctx, string(inventory.GroupByCategory))
		out.ValueByCategory = groups
		return err
	})
	g.Go(func() error {
		groups, err := s.ValueSummaryFeed(ctx, string(inventory.GroupByBrand))
		out.ValueByBrand = groups
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
