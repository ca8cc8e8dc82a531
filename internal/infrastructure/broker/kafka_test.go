package broker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// fakeWriter guarda los mensajes en lugar de enviarlos a Kafka.
type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	fail     error
	deadline bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, w.deadline = ctx.Deadline()
	if w.fail != nil {
		return w.fail
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func shippedEvent() inventory.MovementEvent {
	return inventory.MovementEvent{
		Movement: entity.StockMovement{
			ID:        7,
			ProductID: "prod-1",
			Kind:      entity.MovementShipped,
			Quantity:  -4,
			Reference: "ORD-2023-001",
			CreatedAt: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		SKU:      "SW-003",
		Level:    14,
		LowStock: true,
	}
}

func TestMovementPublisher_PublicaConKeyDeProducto(t *testing.T) {
	w := &fakeWriter{}
	pub := NewMovementPublisher(&Producer{writer: w, log: zerolog.Nop()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // el request ya terminó: la publicación no debe heredar la cancelación
	require.NoError(t, pub.OnMovement(ctx, shippedEvent()))

	require.Len(t, w.messages, 1)
	assert.True(t, w.deadline)
	assert.Equal(t, "prod-1", string(w.messages[0].Key))

	var msg MovementMessage
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &msg))
	assert.Equal(t, EventStockMovement, msg.Type)
	assert.Equal(t, int64(7), msg.Seq)
	assert.Equal(t, "SW-003", msg.SKU)
	assert.Equal(t, "shipped", msg.Kind)
	assert.Equal(t, int64(-4), msg.Quantity)
	assert.Equal(t, int64(14), msg.Level)
	assert.True(t, msg.LowStock)
}

func TestMovementPublisher_PropagaFalloDelBroker(t *testing.T) {
	brokerDown := errors.New("broker caído")
	pub := NewMovementPublisher(&Producer{writer: &fakeWriter{fail: brokerDown}, log: zerolog.Nop()})

	err := pub.OnMovement(context.Background(), shippedEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, brokerDown)
}
