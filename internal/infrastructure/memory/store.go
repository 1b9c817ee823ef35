// Package memory implementa todos los repositorios y el TxRunner en memoria del proceso.
// Se usa en desarrollo (STORE_DRIVER=memory) y en las pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// Una transacción toma el lock exclusivo completo, así que los escritores se serializan;
// las lecturas fuera de transacción usan RLock.
type Store struct {
	mu   sync.RWMutex
	data *state
}

type state struct {
	products  map[string]entity.Product
	movements []entity.StockMovement
	prices    []entity.PriceHistory
	serials   []entity.SerialNumber
	suppliers map[string]entity.Supplier
	links     []entity.ProductSupplier
	refs      []entity.Reference
	users     []entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: &state{
		products:  make(map[string]entity.Product),
		suppliers: make(map[string]entity.Supplier),
	}}
}

func (d *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(d.products)),
		movements: append([]entity.StockMovement(nil), d.movements...),
		prices:    append([]entity.PriceHistory(nil), d.prices...),
		serials:   append([]entity.SerialNumber(nil), d.serials...),
		suppliers: make(map[string]entity.Supplier, len(d.suppliers)),
		links:     append([]entity.ProductSupplier(nil), d.links...),
		refs:      append([]entity.Reference(nil), d.refs...),
		users:     append([]entity.User(nil), d.users...),
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	return c
}

// view acceso al estado; inTx indica que el lock ya lo tiene la transacción en curso.
type view struct {
	s    *Store
	inTx bool
}

func (v view) read(fn func(d *state)) {
	if !v.inTx {
		v.s.mu.RLock()
		defer v.s.mu.RUnlock()
	}
	fn(v.s.data)
}

func (v view) write(fn func(d *state) error) error {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.data)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{v: view{s: s}} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepository {
	return &StockMovementRepository{v: view{s: s}}
}

// Prices repositorio de historial de precios fuera de transacción.
func (s *Store) Prices() *PriceHistoryRepository { return &PriceHistoryRepository{v: view{s: s}} }

// Serials repositorio de números de serie fuera de transacción.
func (s *Store) Serials() *SerialNumberRepository { return &SerialNumberRepository{v: view{s: s}} }

// Suppliers repositorio de proveedores fuera de transacción.
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{v: view{s: s}} }

// References repositorio de tablas de referencia.
func (s *Store) References() *ReferenceRepository { return &ReferenceRepository{v: view{s: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{v: view{s: s}} }

// Reports consultas de reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{v: view{s: s}} }

// Run ejecuta fn con el lock exclusivo. Si fn falla o entra en pánico se restaura la instantánea
// previa, de modo que ninguna escritura parcial queda visible; el pánico se propaga.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos ledger.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	committed := false
	defer func() {
		if !committed {
			s.data = snapshot
		}
	}()
	v := view{s: s, inTx: true}
	repos := ledger.TxRepos{
		Products:  &ProductRepository{v: v},
		Movements: &StockMovementRepository{v: v},
		Prices:    &PriceHistoryRepository{v: v},
		Serials:   &SerialNumberRepository{v: v},
		Suppliers: &SupplierRepository{v: v},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	committed = true
	return nil
}

// Compile-time check.
var _ ledger.TxRunner = (*Store)(nil)
