package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// SerialNumberRepository define el puerto de persistencia para números de serie.
type SerialNumberRepository interface {
	// CreateBatch inserta todas las series; un serial duplicado devuelve ConflictError.
	CreateBatch(ctx context.Context, serials []*entity.SerialNumber) error
	GetBySerial(ctx context.Context, serial string) (*entity.SerialNumber, error)
	// ListByProduct lista las series del producto; status vacío = todas.
	ListByProduct(ctx context.Context, productID string, status entity.SerialStatus) ([]*entity.SerialNumber, error)
	UpdateStatus(ctx context.Context, serial string, status entity.SerialStatus, at time.Time) error
}
