package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// ReferenceHandler maneja una tabla de referencia (categorías, marcas, ubicaciones o unidades).
type ReferenceHandler struct {
	svc  *catalog.Service
	kind entity.ReferenceKind
}

// NewReferenceHandler construye el handler para el tipo dado.
func NewReferenceHandler(svc *catalog.Service, kind entity.ReferenceKind) *ReferenceHandler {
	return &ReferenceHandler{svc: svc, kind: kind}
}

// Create godoc
// @Summary      Crear categoría, marca, ubicación o unidad
// @Description  El nombre es único dentro de cada tipo (sin distinguir mayúsculas).
// @Tags         references
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReferenceRequest  true  "name, code, description"
// @Success      201   {object}  dto.ReferenceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
// @Router       /api/brands [post]
// @Router       /api/locations [post]
// @Router       /api/units [post]
func (h *ReferenceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReferenceRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.CreateReference(c.Context(), h.kind, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías, marcas, ubicaciones o unidades
// @Tags         references
// @Produce      json
// @Success      200  {array}  dto.ReferenceResponse
// @Router       /api/categories [get]
// @Router       /api/brands [get]
// @Router       /api/locations [get]
// @Router       /api/units [get]
func (h *ReferenceHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.ListReferences(c.Context(), h.kind)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
