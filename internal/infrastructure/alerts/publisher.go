package alerts

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
)

var _ ledger.AlertPublisher = (*Publisher)(nil)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher encola alertas de stock bajo en Redis vía Asynq.
type Publisher struct {
	client enqueuer
	closer func() error
}

// NewPublisher crea un cliente Asynq sobre la conexión Redis dada.
func NewPublisher(opts asynq.RedisClientOpt) *Publisher {
	client := asynq.NewClient(opts)
	return &Publisher{client: client, closer: client.Close}
}

// PublishLowStock encola la alerta.
func (p *Publisher) PublishLowStock(ctx context.Context, alert ledger.LowStockAlert) error {
	task, err := NewLowStockTask(alert)
	if err != nil {
		return err
	}
	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskLowStock, err)
	}
	return nil
}

// Close libera el cliente Asynq.
func (p *Publisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
