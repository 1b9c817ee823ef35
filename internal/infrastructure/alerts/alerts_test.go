package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Queue: QueueDefault}, nil
}

func sampleAlert() ledger.LowStockAlert {
	return ledger.LowStockAlert{
		ProductID:       "3f0c6a1e-8d4b-4b7a-9c1e-0a2b3c4d5e6f",
		SKU:             "TAL-001",
		Name:            "Taladro",
		Quantity:        5,
		ReorderPoint:    10,
		ReorderQuantity: 20,
		Status:          string(inventory.StatusReorderNeeded),
		MovementID:      "mov-1",
	}
}

func TestNewLowStockTask(t *testing.T) {
	task, err := NewLowStockTask(sampleAlert())
	require.NoError(t, err)
	assert.Equal(t, TaskLowStock, task.Type())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "TAL-001", payload["sku"])
	assert.EqualValues(t, 5, payload["quantity"])
	assert.EqualValues(t, 10, payload["reorder_point"])
	assert.Equal(t, "REORDER_NEEDED", payload["status"])
}

func TestPublisher_PublishLowStock(t *testing.T) {
	rec := &recordingEnqueuer{}
	p := &Publisher{client: rec}

	require.NoError(t, p.PublishLowStock(context.Background(), sampleAlert()))
	require.Len(t, rec.tasks, 1)
	assert.Equal(t, TaskLowStock, rec.tasks[0].Type())
	assert.NoError(t, p.Close())
}

func TestPublisher_EnqueueError(t *testing.T) {
	p := &Publisher{client: &recordingEnqueuer{err: errors.New("redis caído")}}
	err := p.PublishLowStock(context.Background(), sampleAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), TaskLowStock)
}

func TestLowStockHandler_LogsAlert(t *testing.T) {
	var buf bytes.Buffer
	h := NewLowStockHandler(zerolog.New(&buf))
	task, err := NewLowStockTask(sampleAlert())
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Contains(t, buf.String(), `"sku":"TAL-001"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestLowStockHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewLowStockHandler(zerolog.Nop())

	err := h.ProcessTask(context.Background(), asynq.NewTask(TaskLowStock, []byte("{no-json")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = h.ProcessTask(context.Background(), asynq.NewTask(TaskLowStock, []byte(`{"sku":"X"}`)))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestNewServeMux_RoutesLowStock(t *testing.T) {
	var buf bytes.Buffer
	mux := NewServeMux(zerolog.New(&buf))
	task, err := NewLowStockTask(sampleAlert())
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(context.Background(), task))
	assert.Contains(t, buf.String(), "producto requiere reorden")
}
