package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// referenceTables tabla de cada tipo de referencia. Es la única fuente de nombres de tabla
// interpolados en SQL.
var referenceTables = map[entity.ReferenceKind]string{
	entity.ReferenceCategory: "categories",
	entity.ReferenceBrand:    "brands",
	entity.ReferenceLocation: "locations",
	entity.ReferenceUnit:     "units",
}

// ReferenceRepo categorías, marcas, ubicaciones y unidades sobre PostgreSQL.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func tableFor(kind entity.ReferenceKind) (string, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return "", domain.NewValidationError("kind", domain.CodeInvalid, "tipo de referencia inválido")
	}
	return table, nil
}

// Create persiste una entrada; el nombre es único por tipo (sin distinguir mayúsculas).
func (r *ReferenceRepo) Create(ctx context.Context, ref *entity.Reference) error {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `INSERT INTO `+table+` (id, name, code, description, created_at) VALUES ($1, $2, $3, $4, $5)`,
		ref.ID, ref.Name, ref.Code, ref.Description, ref.CreatedAt)
	if err != nil {
		if mapped := mapWriteError(err, string(ref.Kind), "name", ref.Name); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create %s: %w", ref.Kind, err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *ReferenceRepo) GetByID(ctx context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, kind, `SELECT id, name, code, description, created_at FROM `+table+` WHERE id = $1`, id)
}

// GetByName obtiene una entrada por nombre, sin distinguir mayúsculas.
func (r *ReferenceRepo) GetByName(ctx context.Context, kind entity.ReferenceKind, name string) (*entity.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, kind, `SELECT id, name, code, description, created_at FROM `+table+` WHERE lower(name) = lower($1)`, name)
}

func (r *ReferenceRepo) getOne(ctx context.Context, kind entity.ReferenceKind, query, arg string) (*entity.Reference, error) {
	ref := entity.Reference{Kind: kind}
	err := r.q.QueryRow(ctx, query, arg).Scan(&ref.ID, &ref.Name, &ref.Code, &ref.Description, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return &ref, nil
}

// List entradas del tipo ordenadas por nombre.
func (r *ReferenceRepo) List(ctx context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT id, name, code, description, created_at FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()
	list := make([]*entity.Reference, 0)
	for rows.Next() {
		ref := entity.Reference{Kind: kind}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Code, &ref.Description, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		list = append(list, &ref)
	}
	return list, rows.Err()
}
