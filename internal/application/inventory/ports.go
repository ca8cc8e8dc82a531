package inventory

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Restore lo usa para leer catálogo y ledger desde una misma foto consistente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// MovementEvent lo que ven los listeners después de confirmar un movimiento.
type MovementEvent struct {
	Movement    entity.StockMovement
	ProductName string
	SKU         string
	Level       int64 // nivel acotado después del movimiento
	LowStock    bool
}

// MovementListener recibe los movimientos ya confirmados en el ledger (métricas, Kafka, WebSocket).
// Se invoca fuera del bloqueo; un error se registra en el log y nunca deshace el append.
type MovementListener interface {
	OnMovement(ctx context.Context, evt MovementEvent) error
}
