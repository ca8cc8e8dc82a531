package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// ReplenishmentSuggestion sugerencia de reposición para un SKU en o bajo su punto de reorden.
type ReplenishmentSuggestion struct {
	Product            entity.Product
	CurrentStock       int64
	IdealStock         int64           // ceil(ReorderPoint * 1.5)
	SuggestedOrderQty  int64           // IdealStock - CurrentStock
	EstimatedOrderCost decimal.Decimal // SuggestedOrderQty * CostPrice
	GrossMarginPct     decimal.Decimal // (Price - CostPrice) / Price * 100
	UnitsShipped       int64           // despachos de los últimos 90 días
	Priority           int             // 1 = más urgente
}

// ReplenishmentUseCase genera la lista de reposición a partir del catálogo y del ledger.
type ReplenishmentUseCase struct {
	store *Store
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(store *Store) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{store: store}
}

// GenerateReplenishmentList devuelve los productos con stock bajo con la cantidad sugerida
// de pedido, ordenados por margen, luego volumen despachado, luego déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(now time.Time) []ReplenishmentSuggestion {
	snap := uc.store.Snapshot()

	// Volumen despachado por producto (últimos 90 días)
	since := now.AddDate(0, 0, -90)
	shipped := make(map[string]int64)
	for _, m := range snap.Movements {
		if m.Kind == entity.MovementShipped && !m.CreatedAt.Before(since) {
			shipped[m.ProductID] += -m.Quantity
		}
	}

	hundred := decimal.NewFromInt(100)
	var suggestions []ReplenishmentSuggestion
	for _, p := range snap.Products {
		level := snap.LevelOf(p.ID)
		if level > p.ReorderPoint {
			continue
		}
		ideal := decimal.NewFromInt(p.ReorderPoint).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
		qty := ideal - level
		if qty < 0 {
			qty = 0
		}
		var margin decimal.Decimal
		if p.Price.GreaterThan(decimal.Zero) {
			margin = p.Price.Sub(p.CostPrice).Div(p.Price).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, ReplenishmentSuggestion{
			Product:            p,
			CurrentStock:       level,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			EstimatedOrderCost: p.CostPrice.Mul(decimal.NewFromInt(qty)),
			GrossMarginPct:     margin,
			UnitsShipped:       shipped[p.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsShipped != b.UnitsShipped {
			return a.UnitsShipped > b.UnitsShipped
		}
		// Desempate: mayor déficit absoluto
		return a.Product.ReorderPoint-a.CurrentStock > b.Product.ReorderPoint-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions
}
