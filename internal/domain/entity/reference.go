package entity

import "time"

// ReferenceKind tablas de referencia simples.
type ReferenceKind string

const (
	ReferenceCategory ReferenceKind = "category"
	ReferenceBrand    ReferenceKind = "brand"
	ReferenceLocation ReferenceKind = "location"
	ReferenceUnit     ReferenceKind = "unit"
)

// Valid indica si el tipo de referencia es conocido.
func (k ReferenceKind) Valid() bool {
	switch k {
	case ReferenceCategory, ReferenceBrand, ReferenceLocation, ReferenceUnit:
		return true
	}
	return false
}

// Reference entrada de catálogo de referencia (categoría, marca, ubicación, unidad).
// El nombre es único dentro de cada tipo.
type Reference struct {
	ID          string
	Kind        ReferenceKind
	Name        string
	Code        string
	Description string
	CreatedAt   time.Time
}
