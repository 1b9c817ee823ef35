package memory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// StockMovementRepository log append-only de movimientos en memoria.
type StockMovementRepository struct {
	v view
}

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.products[m.ProductID]; !ok {
			return domain.NewNotFound("producto", m.ProductID)
		}
		d.movements = append(d.movements, *m)
		return nil
	})
}

func (r *StockMovementRepository) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	r.v.read(func(d *state) {
		skipped := 0
		for i := len(d.movements) - 1; i >= 0; i-- {
			m := d.movements[i]
			if m.ProductID != productID {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) == limit {
				return
			}
			out = append(out, &m)
		}
	})
	return out, nil
}

func (r *StockMovementRepository) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	r.v.read(func(d *state) {
		for _, m := range d.movements {
			if m.ProductID == productID {
				n++
			}
		}
	})
	return n, nil
}

func (r *StockMovementRepository) History(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	r.v.read(func(d *state) {
		for _, m := range d.movements {
			if m.ProductID == productID {
				out = append(out, &m)
			}
		}
	})
	return out, nil
}

// PriceHistoryRepository historial de precios en memoria.
type PriceHistoryRepository struct {
	v view
}

func (r *PriceHistoryRepository) Create(_ context.Context, h *entity.PriceHistory) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.products[h.ProductID]; !ok {
			return domain.NewNotFound("producto", h.ProductID)
		}
		d.prices = append(d.prices, *h)
		return nil
	})
}

// ListByProduct más reciente primero.
func (r *PriceHistoryRepository) ListByProduct(_ context.Context, productID string) ([]*entity.PriceHistory, error) {
	out := make([]*entity.PriceHistory, 0)
	r.v.read(func(d *state) {
		for i := len(d.prices) - 1; i >= 0; i-- {
			if h := d.prices[i]; h.ProductID == productID {
				out = append(out, &h)
			}
		}
	})
	return out, nil
}

// SerialNumberRepository números de serie en memoria.
type SerialNumberRepository struct {
	v view
}

func (r *SerialNumberRepository) CreateBatch(_ context.Context, serials []*entity.SerialNumber) error {
	return r.v.write(func(d *state) error {
		seen := make(map[string]struct{}, len(d.serials)+len(serials))
		for _, s := range d.serials {
			seen[s.Serial] = struct{}{}
		}
		for _, s := range serials {
			if _, dup := seen[s.Serial]; dup {
				return domain.NewConflict("número de serie", "serial", s.Serial)
			}
			seen[s.Serial] = struct{}{}
		}
		for _, s := range serials {
			d.serials = append(d.serials, *s)
		}
		return nil
	})
}

func (r *SerialNumberRepository) GetBySerial(_ context.Context, serial string) (*entity.SerialNumber, error) {
	var out *entity.SerialNumber
	r.v.read(func(d *state) {
		for _, s := range d.serials {
			if s.Serial == serial {
				out = &s
				return
			}
		}
	})
	return out, nil
}

func (r *SerialNumberRepository) ListByProduct(_ context.Context, productID string, status entity.SerialStatus) ([]*entity.SerialNumber, error) {
	out := make([]*entity.SerialNumber, 0)
	r.v.read(func(d *state) {
		for _, s := range d.serials {
			if s.ProductID == productID && (status == "" || s.Status == status) {
				out = append(out, &s)
			}
		}
	})
	return out, nil
}

func (r *SerialNumberRepository) UpdateStatus(_ context.Context, serial string, status entity.SerialStatus, at time.Time) error {
	return r.v.write(func(d *state) error {
		for i := range d.serials {
			if d.serials[i].Serial == serial {
				d.serials[i].Status = status
				d.serials[i].UpdatedAt = at
				return nil
			}
		}
		return domain.NewNotFound("número de serie", serial)
	})
}

var (
	_ repository.StockMovementRepository = (*StockMovementRepository)(nil)
	_ repository.PriceHistoryRepository  = (*PriceHistoryRepository)(nil)
	_ repository.SerialNumberRepository  = (*SerialNumberRepository)(nil)
)
