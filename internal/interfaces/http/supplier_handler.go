package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

// SupplierHandler maneja proveedores y su vínculo con productos.
type SupplierHandler struct {
	svc *catalog.Service
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(svc *catalog.Service) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.CreateSupplier(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.svc.ListSuppliers(c.Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Link godoc
// @Summary      Vincular proveedor a producto
// @Description  Un solo vínculo por par producto-proveedor; marcar preferido desmarca el anterior.
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.LinkSupplierRequest  true  "supplier_id, supplier_sku, supplier_cost, lead_time_days, is_preferred"
// @Success      201   {object}  dto.ProductSupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers [post]
func (h *SupplierHandler) Link(c *fiber.Ctx) error {
	var in dto.LinkSupplierRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.LinkSupplier(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListForProduct godoc
// @Summary      Proveedores de un producto
// @Tags         suppliers
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.ProductSupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/suppliers [get]
func (h *SupplierHandler) ListForProduct(c *fiber.Ctx) error {
	out, err := h.svc.ListProductSuppliers(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
