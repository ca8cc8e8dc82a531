package repository

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (append-only: sin Update ni Delete).
type StockMovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	// ListAll devuelve todo el ledger en orden de secuencia.
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
}
