package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
)

const (
	// QueueDefault cola usada para las alertas de inventario.
	QueueDefault = "default"
	// TaskLowStock tarea emitida cuando un producto entra en REORDER_NEEDED.
	TaskLowStock = "inventory:low_stock"
	// MaxRetry reintentos del worker antes de archivar la tarea.
	MaxRetry = 3
)

// NewLowStockTask construye la tarea Asynq con la alerta serializada en JSON.
func NewLowStockTask(alert ledger.LowStockAlert) (*asynq.Task, error) {
	body, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("encode low stock alert: %w", err)
	}
	return asynq.NewTask(TaskLowStock, body, asynq.Queue(QueueDefault), asynq.MaxRetry(MaxRetry)), nil
}

// LowStockHandler procesa las alertas de stock bajo en el worker.
type LowStockHandler struct {
	log zerolog.Logger
}

// NewLowStockHandler construye el handler.
func NewLowStockHandler(log zerolog.Logger) *LowStockHandler {
	return &LowStockHandler{log: log}
}

// ProcessTask implementa asynq.Handler. Un payload inválido no se reintenta.
func (h *LowStockHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var alert ledger.LowStockAlert
	if err := json.Unmarshal(t.Payload(), &alert); err != nil {
		h.log.Error().Err(err).Str("task", t.Type()).Msg("payload de alerta inválido")
		return fmt.Errorf("decode low stock alert: %v: %w", err, asynq.SkipRetry)
	}
	if alert.ProductID == "" {
		h.log.Error().Str("task", t.Type()).Msg("alerta sin product_id")
		return fmt.Errorf("alerta sin product_id: %w", asynq.SkipRetry)
	}
	h.log.Warn().
		Str("product_id", alert.ProductID).
		Str("sku", alert.SKU).
		Str("name", alert.Name).
		Int64("quantity", alert.Quantity).
		Int64("reorder_point", alert.ReorderPoint).
		Int64("reorder_quantity", alert.ReorderQuantity).
		Str("movement_id", alert.MovementID).
		Msg("producto requiere reorden")
	return nil
}

// NewServeMux registra los handlers de alertas.
func NewServeMux(log zerolog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TaskLowStock, NewLowStockHandler(log))
	return mux
}
