package repository

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia durable del catálogo (DIP).
// El Store en memoria es el dueño del estado; el repositorio solo lo hace sobrevivir reinicios.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
