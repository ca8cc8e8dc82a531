// Package inventory contiene la lógica pura del ledger de stock: derivación de signo,
// proyección de niveles y agregados del dashboard. No hace I/O ni guarda estado.
package inventory

import (
	"math"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// SignedDelta convierte (tipo, cantidad) en el delta con signo que se guarda en el ledger.
//
//	received → +cantidad (cantidad > 0)
//	shipped  → −cantidad (cantidad > 0)
//	adjusted → cantidad tal cual (≠ 0, cualquier signo)
func SignedDelta(kind entity.MovementKind, quantity int64) (int64, error) {
	switch kind {
	case entity.MovementReceived:
		if quantity <= 0 {
			return 0, domain.NewValidationError("quantity", "debe ser un entero positivo para received")
		}
		return quantity, nil
	case entity.MovementShipped:
		if quantity <= 0 {
			return 0, domain.NewValidationError("quantity", "debe ser un entero positivo para shipped")
		}
		return -quantity, nil
	case entity.MovementAdjusted:
		if quantity == 0 {
			return 0, domain.NewValidationError("quantity", "un ajuste no puede ser cero")
		}
		if quantity == math.MinInt64 {
			return 0, domain.NewValidationError("quantity", "ajuste fuera de rango")
		}
		return quantity, nil
	default:
		return 0, domain.NewValidationError("kind", "tipo de movimiento desconocido: "+string(kind))
	}
}

// AddOverflows indica si total + delta se sale de int64.
func AddOverflows(total, delta int64) bool {
	if delta > 0 {
		return total > math.MaxInt64-delta
	}
	return total < math.MinInt64-delta
}
