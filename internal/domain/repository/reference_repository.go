package repository

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ReferenceRepository puerto para tablas de referencia (categorías, marcas, ubicaciones, unidades).
type ReferenceRepository interface {
	Create(ctx context.Context, ref *entity.Reference) error
	GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error)
	GetByName(ctx context.Context, kind entity.ReferenceKind, name string) (*entity.Reference, error)
	List(ctx context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error)
}
