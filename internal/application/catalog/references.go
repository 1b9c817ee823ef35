package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// CreateReference crea una categoría, marca, ubicación o unidad. El nombre es único por tipo.
func (s *Service) CreateReference(ctx context.Context, kind entity.ReferenceKind, in dto.CreateReferenceRequest) (*dto.ReferenceResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", domain.CodeInvalid, "tipo de referencia inválido")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", domain.CodeRequired, "name es requerido")
	}
	existing, err := s.references.GetByName(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict(string(kind), "name", name)
	}
	ref := &entity.Reference{
		ID:          uuid.New().String(),
		Kind:        kind,
		Name:        name,
		Code:        strings.TrimSpace(in.Code),
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.references.Create(ctx, ref); err != nil {
		return nil, err
	}
	out := toReferenceResponse(ref)
	return &out, nil
}

// ListReferences entradas de un tipo ordenadas por nombre.
func (s *Service) ListReferences(ctx context.Context, kind entity.ReferenceKind) ([]dto.ReferenceResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", domain.CodeInvalid, "tipo de referencia inválido")
	}
	list, err := s.references.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReferenceResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReferenceResponse(r))
	}
	return out, nil
}

// CreateUser registra un usuario para atribución de movimientos y cambios de precio.
func (s *Service) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflict("usuario", "username", username)
	}
	u := &entity.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	out := toUserResponse(u)
	return &out, nil
}
