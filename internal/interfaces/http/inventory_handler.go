package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

// InventoryHandler maneja los movimientos de stock y el estado de los números de serie.
type InventoryHandler struct {
	svc *catalog.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *catalog.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN exige cantidad positiva, OUT negativa; ADJUSTMENT y TRANSFER distinta de cero.
// @Description  Para productos serializados, serials lista las series que entran o salen.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        X-User-ID  header  string  false  "Usuario que registra el movimiento"
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity_change, unit_cost, serials"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.RecordMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSerialStatus godoc
// @Summary      Cambiar estado de un número de serie
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        serial  path  string  true  "Número de serie"
// @Param        body    body  dto.UpdateSerialStatusRequest  true  "status"
// @Success      200  {object}  dto.SerialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/serials/{serial} [patch]
func (h *InventoryHandler) UpdateSerialStatus(c *fiber.Ctx) error {
	var in dto.UpdateSerialStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.svc.UpdateSerialStatus(c.Context(), c.Params("serial"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
