package ledger

import (
	"context"

	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Prices    repository.PriceHistoryRepository
	Serials   repository.SerialNumberRepository
	Suppliers repository.SupplierRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso. Garantiza atomicidad del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// FeedCache caché opcional de los feeds de lectura (stock bajo, resúmenes de valor).
// Load devuelve la versión vigente y false si la clave no está en caché; Store escribe bajo esa versión.
type FeedCache interface {
	Load(ctx context.Context, key string, dst any) (version int64, hit bool, err error)
	Store(ctx context.Context, key string, version int64, value any) error
	Invalidate(ctx context.Context) error
}

// AlertPublisher publica alertas de stock bajo para consumidores de notificaciones.
type AlertPublisher interface {
	PublishLowStock(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert producto que acaba de entrar en REORDER_NEEDED.
type LowStockAlert struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	ReorderPoint    int64  `json:"reorder_point"`
	ReorderQuantity int64  `json:"reorder_quantity"`
	Status          string `json:"status"`
	MovementID      string `json:"movement_id"`
}
