package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

func TestGenerateReplenishmentList_CantidadYPrioridad(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "RP-1", "", 15) // margen (20-12.5)/20 = 37.5 %
	appendOK(t, s, p.ID, entity.MovementReceived, 25)
	appendOK(t, s, p.ID, entity.MovementShipped, 12) // nivel 13
	healthy := createProduct(t, s, "RP-2", "", 1)
	appendOK(t, s, healthy.ID, entity.MovementReceived, 100)

	list := inventory.NewReplenishmentUseCase(s).GenerateReplenishmentList(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.Len(t, list, 1)

	got := list[0]
	assert.Equal(t, "RP-1", got.Product.SKU)
	assert.Equal(t, int64(13), got.CurrentStock)
	assert.Equal(t, int64(23), got.IdealStock, "ceil(15 × 1.5)")
	assert.Equal(t, int64(10), got.SuggestedOrderQty)
	assert.True(t, decimal.RequireFromString("125").Equal(got.EstimatedOrderCost))
	assert.True(t, decimal.RequireFromString("37.5").Equal(got.GrossMarginPct))
	assert.Equal(t, int64(12), got.UnitsShipped)
	assert.Equal(t, 1, got.Priority)
}
