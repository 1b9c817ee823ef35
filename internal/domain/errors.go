package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrReconciliation    = errors.New("inconsistencia entre stock y movimientos")
)

// Códigos de violación usados en ValidationError.
const (
	CodeRequired          = "required"
	CodeNegative          = "negative"
	CodeOutOfRange        = "out_of_range"
	CodeInvalid           = "invalid"
	CodeInsufficientStock = "insufficient_stock"
	CodeInactive          = "inactive"
)

// Violation describe una restricción incumplida sobre un campo.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones detectadas en una entrada.
type ValidationError struct {
	Violations []Violation
}

// Add registra una violación adicional.
func (e *ValidationError) Add(field, code, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Code: code, Message: message})
}

// Merge agrega las violaciones de otro ValidationError.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	e.Violations = append(e.Violations, other.Violations...)
}

// Empty indica si no se registró ninguna violación.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Violations) == 0
}

// OrNil devuelve el error solo si tiene violaciones; evita el nil tipado en interfaces.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// HasCode indica si alguna violación tiene el código dado.
func (e *ValidationError) HasCode(code string) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) y errors.Is(err, ErrInsufficientStock).
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return true
	case ErrInsufficientStock:
		return e.HasCode(CodeInsufficientStock)
	}
	return false
}

// NewValidationError construye un ValidationError con una sola violación.
func NewValidationError(field, code, message string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, code, message)
	return ve
}

// NotFoundError referencia a un recurso inexistente (producto, proveedor, ubicación, usuario...).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError violación de unicidad (SKU, par producto-proveedor, serial...).
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s duplicado (%s)", e.Resource, e.Field)
	}
	return fmt.Sprintf("%s duplicado: %s=%q ya existe", e.Resource, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrDuplicate }

// NewConflict construye un ConflictError.
func NewConflict(resource, field, value string) *ConflictError {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

// ReconciliationError invariante interna rota: el stock del producto y su historial
// de movimientos no cuadran. Indica un bug; la operación se aborta sin escrituras parciales.
type ReconciliationError struct {
	ProductID string
	Previous  int64
	Delta     int64
	New       int64
	Reason    string
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliación fallida para producto %s (anterior=%d delta=%d nuevo=%d): %s",
		e.ProductID, e.Previous, e.Delta, e.New, e.Reason)
}

func (e *ReconciliationError) Unwrap() error { return ErrReconciliation }
