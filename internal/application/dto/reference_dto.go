package dto

import "time"

// CreateReferenceRequest entrada para crear una categoría, marca, ubicación o unidad.
type CreateReferenceRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Code        string `json:"code" validate:"max=20"`
	Description string `json:"description"`
}

// ReferenceResponse salida de una entrada de referencia.
type ReferenceResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Code        string    `json:"code,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
