package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

func TestFold_AcotaSoloElTotal(t *testing.T) {
	movs := []entity.StockMovement{
		{ID: 1, ProductID: "p", Kind: entity.MovementShipped, Quantity: -10},
		{ID: 2, ProductID: "otro", Kind: entity.MovementReceived, Quantity: 100},
		{ID: 3, ProductID: "p", Kind: entity.MovementReceived, Quantity: 15},
	}
	// −10 + 15 = 5: el total intermedio negativo no se acota
	assert.Equal(t, int64(5), inventory.Fold(movs, "p"))
	assert.Equal(t, int64(100), inventory.Fold(movs, "otro"))
	assert.Equal(t, int64(0), inventory.Fold(movs, "sin-movimientos"))
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, int64(0), inventory.ClampLevel(-7))
	assert.Equal(t, int64(0), inventory.ClampLevel(0))
	assert.Equal(t, int64(13), inventory.ClampLevel(13))
}

func TestIsLow_UmbralInclusivo(t *testing.T) {
	assert.True(t, inventory.IsLow(15, 15), "nivel igual al punto de reorden es stock bajo")
	assert.True(t, inventory.IsLow(0, 0))
	assert.False(t, inventory.IsLow(16, 15))
}
