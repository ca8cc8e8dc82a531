package inventory

import "github.com/jhoicas/inventory-dashboard/internal/domain/entity"

// ClampLevel acota a cero un total acumulado. El historial del ledger se conserva sin acotar.
func ClampLevel(total int64) int64 {
	if total < 0 {
		return 0
	}
	return total
}

// Fold suma los deltas de un producto en orden de append y devuelve el nivel acotado.
func Fold(movements []entity.StockMovement, productID string) int64 {
	var total int64
	for _, m := range movements {
		if m.ProductID == productID {
			total += m.Quantity
		}
	}
	return ClampLevel(total)
}

// IsLow indica si un nivel está en o por debajo del punto de reorden.
func IsLow(level, reorderPoint int64) bool {
	return level <= reorderPoint
}
