// Package platform arma los repositorios según el driver configurado (postgres o memoria)
// y construye el ledger y el servicio de catálogo sobre ellos.
package platform

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/memory"
	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-tracker/pkg/config"
)

// Store repositorios y runner transaccional de un mismo backend.
type Store struct {
	Tx         ledger.TxRunner
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Prices     repository.PriceHistoryRepository
	Serials    repository.SerialNumberRepository
	Suppliers  repository.SupplierRepository
	References repository.ReferenceRepository
	Users      repository.UserRepository
	Reports    repository.ReportRepository

	close func()
}

// OpenStore abre el backend configurado. Con postgres aplica las migraciones si DB.Migrate está activo.
func OpenStore(ctx context.Context, storeCfg config.StoreConfig, dbCfg config.DBConfig, log zerolog.Logger) (*Store, error) {
	switch storeCfg.Driver {
	case config.StoreMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return NewMemoryStore(), nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if dbCfg.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &Store{
			Tx:         postgres.NewTxRunner(pool),
			Products:   postgres.NewProductRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			Prices:     postgres.NewPriceHistoryRepository(pool),
			Serials:    postgres.NewSerialNumberRepository(pool),
			Suppliers:  postgres.NewSupplierRepository(pool),
			References: postgres.NewReferenceRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Reports:    postgres.NewReportRepository(pool),
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", storeCfg.Driver)
}

// NewMemoryStore backend en memoria del proceso.
func NewMemoryStore() *Store {
	s := memory.NewStore()
	return &Store{
		Tx:         s,
		Products:   s.Products(),
		Movements:  s.Movements(),
		Prices:     s.Prices(),
		Serials:    s.Serials(),
		Suppliers:  s.Suppliers(),
		References: s.References(),
		Users:      s.Users(),
		Reports:    s.Reports(),
	}
}

// LedgerDeps dependencias del ledger sin caché ni alertas.
func (s *Store) LedgerDeps(log zerolog.Logger) ledger.Deps {
	return ledger.Deps{
		Tx:         s.Tx,
		Products:   s.Products,
		Movements:  s.Movements,
		Prices:     s.Prices,
		References: s.References,
		Users:      s.Users,
		Reports:    s.Reports,
		Logger:     log,
	}
}

// Catalog construye el servicio de catálogo sobre el ledger dado.
func (s *Store) Catalog(l *ledger.ProductLedger, defaults catalog.Defaults, log zerolog.Logger) *catalog.Service {
	return catalog.NewService(catalog.Deps{
		Ledger:     l,
		Tx:         s.Tx,
		Serials:    s.Serials,
		Suppliers:  s.Suppliers,
		References: s.References,
		Users:      s.Users,
		Defaults:   defaults,
		Logger:     log,
	})
}

// Close libera el pool de conexiones (no-op en memoria).
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// CatalogDefaults traduce la configuración a los valores por defecto del catálogo.
func CatalogDefaults(c config.CatalogConfig) catalog.Defaults {
	return catalog.Defaults{
		MinimumStock:    c.DefaultMinStock,
		MaximumStock:    c.DefaultMaxStock,
		ReorderPoint:    c.DefaultReorderPoint,
		ReorderQuantity: c.DefaultReorderQuantity,
		Unit:            c.DefaultUnit,
		MaxSerials:      c.MaxSerialsPerMovement,
	}
}
