package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventory-tracker/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgErrorCode(err error) (string, *pgconn.PgError) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr
	}
	return "", nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == codeUniqueViolation
}

// mapWriteError traduce violaciones de constraints a errores de dominio:
// único → ConflictError, FK → NotFoundError, CHECK → ValidationError. Devuelve nil si no aplica.
func mapWriteError(err error, resource, field, value string) error {
	code, pgErr := pgErrorCode(err)
	switch code {
	case codeUniqueViolation:
		return domain.NewConflict(resource, field, value)
	case codeForeignKeyViolation:
		return domain.NewNotFound("referencia ("+pgErr.ConstraintName+")", pgErr.Detail)
	case codeCheckViolation:
		return domain.NewValidationError(pgErr.ConstraintName, domain.CodeOutOfRange, pgErr.Message)
	}
	return nil
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUUID evita enviar a Postgres identificadores que no pueden existir (error 22P02).
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
