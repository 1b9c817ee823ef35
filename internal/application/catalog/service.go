// Package catalog expone las operaciones de catálogo para los llamadores (HTTP, carga CSV):
// alta y consulta de productos, movimientos con números de serie, proveedores,
// tablas de referencia, usuarios y feeds de reportes. Toda mutación de stock pasa por el ledger.
package catalog

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// Defaults umbrales y unidad aplicados a los productos creados desde el formulario simple.
type Defaults struct {
	MinimumStock    int64
	MaximumStock    int64
	ReorderPoint    int64
	ReorderQuantity int64
	Unit            string // nombre de la unidad; vacío = sin unidad
	MaxSerials      int64  // tope de series por movimiento; <= 0 usa DefaultMaxSerials
}

// DefaultMaxSerials tope de series emitidas o retiradas en un solo movimiento.
const DefaultMaxSerials = 1000

// Deps dependencias del servicio de catálogo.
type Deps struct {
	Ledger     *ledger.ProductLedger
	Tx         ledger.TxRunner
	Serials    repository.SerialNumberRepository
	Suppliers  repository.SupplierRepository
	References repository.ReferenceRepository
	Users      repository.UserRepository
	Defaults   Defaults
	Logger     zerolog.Logger
}

// Service casos de uso del catálogo.
type Service struct {
	ledger     *ledger.ProductLedger
	tx         ledger.TxRunner
	serials    repository.SerialNumberRepository
	suppliers  repository.SupplierRepository
	references repository.ReferenceRepository
	users      repository.UserRepository
	defaults   Defaults
	log        zerolog.Logger
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	if d.Defaults.MaxSerials <= 0 {
		d.Defaults.MaxSerials = DefaultMaxSerials
	}
	return &Service{
		ledger:     d.Ledger,
		tx:         d.Tx,
		serials:    d.Serials,
		suppliers:  d.Suppliers,
		references: d.References,
		users:      d.Users,
		defaults:   d.Defaults,
		log:        d.Logger,
	}
}
