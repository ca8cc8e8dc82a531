package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/orders"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/infrastructure/seed"
)

func TestLoadCatalog_CargaUnaSolaVez(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewStore(inventory.StoreDeps{})

	res, err := seed.LoadCatalog(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Products)
	assert.Equal(t, 12, res.Movements)

	levels := make(map[string]int64)
	for _, p := range store.ListProducts(inventory.ProductFilter{}) {
		view, err := store.StockOf(p.ID)
		require.NoError(t, err)
		levels[p.SKU] = view.Level
	}
	assert.Equal(t, int64(162), levels["WE-001"])
	assert.Equal(t, int64(43), levels["LB-002"])
	assert.Equal(t, int64(39), levels["SW-003"])
	assert.Equal(t, int64(59), levels["BS-004"])

	again, err := seed.LoadCatalog(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, again.Products)
	assert.Len(t, store.Movements(inventory.MovementFilter{}), 12)
}

func TestLoadDirectory_ProveedoresYPedidos(t *testing.T) {
	ctx := context.Background()
	store := inventory.NewStore(inventory.StoreDeps{})
	_, err := seed.LoadCatalog(ctx, store, zerolog.Nop())
	require.NoError(t, err)

	suppliers := usecase.NewSupplierUseCase(store)
	orderUC := orders.NewOrderUseCase(zerolog.Nop())

	res, err := seed.LoadDirectory(ctx, store, suppliers, orderUC, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Suppliers)
	assert.Equal(t, 4, res.Orders)

	var techGadget *usecase.SupplierView
	for _, s := range suppliers.List(usecase.SupplierFilter{}) {
		if s.Name == "TechGadget Inc." {
			s := s
			techGadget = &s
		}
	}
	require.NotNil(t, techGadget)
	assert.Equal(t, 2, techGadget.ProductsSupplied)

	delivered := orderUC.List(orders.OrderFilter{Status: entity.OrderDelivered})
	require.Len(t, delivered, 1)
	assert.True(t, decimal.RequireFromString("1399.91").Equal(delivered[0].Total))

	again, err := seed.LoadDirectory(ctx, store, suppliers, orderUC, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, again.Suppliers)
	assert.Zero(t, again.Orders)
}
