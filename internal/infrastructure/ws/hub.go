// Package ws difunde los movimientos de stock a los dashboards conectados por WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/broker"
)

// Conn lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub registro de clientes y canal de difusión.
type Hub struct {
	clients    map[Conn]bool
	register   chan Conn
	unregister chan Conn
	broadcast  chan []byte
	done       chan struct{} // cerrado cuando Run termina
	mutex      sync.Mutex
	log        zerolog.Logger
}

// NewHub construye el hub. Arrancar con Run en su propia goroutine.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]bool),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende altas, bajas y difusión hasta que ctx termine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register da de alta una conexión. Con el hub detenido la conexión se cierra.
func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

// Unregister da de baja y cierra una conexión.
func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

// Clients cantidad de clientes conectados.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

var _ inventory.MovementListener = (*Hub)(nil)

// OnMovement encola el movimiento para difusión. Si el buffer está lleno se descarta:
// el dashboard vuelve a consultar el resumen completo al reconectar.
func (h *Hub) OnMovement(_ context.Context, evt inventory.MovementEvent) error {
	payload, err := json.Marshal(broker.NewMovementMessage(evt))
	if err != nil {
		return fmt.Errorf("marshal ws message: %w", err)
	}
	select {
	case h.broadcast <- payload:
		return nil
	default:
		return fmt.Errorf("ws: buffer de difusión lleno, movimiento %d descartado", evt.Movement.ID)
	}
}

// Serve bucle por conexión: registra, lee hasta error (keep-alive) y da de baja.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register(c)
	defer h.Unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
