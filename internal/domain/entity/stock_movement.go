package entity

import "time"

// MovementKind tipo de movimiento de inventario.
type MovementKind string

const (
	MovementReceived MovementKind = "received" // entrada
	MovementShipped  MovementKind = "shipped"  // salida
	MovementAdjusted MovementKind = "adjusted" // ajuste (cualquier signo)
)

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementReceived, MovementShipped, MovementAdjusted:
		return true
	}
	return false
}

// StockMovement representa una entrada inmutable del ledger.
// Quantity es el delta con signo: positivo entrada/ajuste+, negativo salida/ajuste-.
type StockMovement struct {
	ID        int64 // secuencia estrictamente creciente
	ProductID string
	Kind      MovementKind
	Quantity  int64
	Reference string
	CreatedAt time.Time
}
