package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/application/catalog"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// ReportHandler expone los feeds de stock bajo, valor de inventario y estadísticas.
type ReportHandler struct {
	svc *catalog.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *catalog.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// LowStock godoc
// @Summary      Productos para reordenar
// @Description  Activos con cantidad <= punto de reorden, mayor déficit primero.
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.svc.LowStockFeed(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Value godoc
// @Summary      Valor del inventario agrupado
// @Tags         reports
// @Produce      json
// @Param        group_by  query  string  false  "category o brand"  default(category)
// @Success      200  {array}   dto.ValueGroupDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/value [get]
func (h *ReportHandler) Value(c *fiber.Ctx) error {
	out, err := h.svc.ValueSummaryFeed(c.Context(), c.Query("group_by", string(inventory.GroupByCategory)))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Estadísticas generales
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SummaryStatsDTO
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.svc.SummaryStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Resumen completo del inventario
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Router       /api/reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	out, err := h.svc.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
