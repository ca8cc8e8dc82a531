package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/broker"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/ws"
)

// fakeConn conexión en memoria.
type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	fail     error
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func event(seq int64) inventory.MovementEvent {
	return inventory.MovementEvent{
		Movement: entity.StockMovement{ID: seq, ProductID: "p1", Kind: entity.MovementReceived, Quantity: 5},
		SKU:      "WE-001",
		Level:    5,
	}
}

func TestHub_DifundeATodosLosClientes(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a, b := &fakeConn{}, &fakeConn{}
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.OnMovement(ctx, event(1)))
	require.Eventually(t, func() bool { return a.received() == 1 && b.received() == 1 }, time.Second, 5*time.Millisecond)

	var msg broker.MovementMessage
	a.mu.Lock()
	require.NoError(t, json.Unmarshal(a.messages[0], &msg))
	a.mu.Unlock()
	assert.Equal(t, int64(1), msg.Seq)
	assert.Equal(t, "WE-001", msg.SKU)
}

func TestHub_QuitaClientesQueFallan(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	ok, broken := &fakeConn{}, &fakeConn{fail: errors.New("broken pipe")}
	hub.Register(ok)
	hub.Register(broken)
	require.NoError(t, hub.OnMovement(ctx, event(1)))

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed())

	hub.Unregister(ok)
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, ok.isClosed())
}

func TestHub_BufferLlenoDescarta(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop()) // sin Run: nadie consume
	var err error
	for i := int64(1); i <= 65; i++ {
		if err = hub.OnMovement(context.Background(), event(i)); err != nil {
			break
		}
	}
	assert.Error(t, err)
}

func TestHub_CierraClientesAlTerminar(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	conn := &fakeConn{}
	hub.Register(conn)
	cancel()
	<-done
	assert.True(t, conn.isClosed())
	assert.Equal(t, 0, hub.Clients())
}

func TestHub_RegistroTrasDetenerNoBloquea(t *testing.T) {
	hub := ws.NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	late := &fakeConn{}
	returned := make(chan struct{})
	go func() {
		hub.Register(late)
		hub.Unregister(late)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister bloqueados con el hub detenido")
	}
	assert.True(t, late.isClosed())
	assert.Equal(t, 0, hub.Clients())
}
