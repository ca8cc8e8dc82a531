package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// MaxWindowDays límite de días para MovementsByDay.
const MaxWindowDays = 366

// Snapshot vista consistente de catálogo + ledger tomada bajo un único bloqueo de lectura.
// Levels contiene el nivel acotado de cada producto del catálogo.
type Snapshot struct {
	Products  []entity.Product
	Levels    map[string]int64
	Movements []entity.StockMovement
	TakenAt   time.Time
}

// LevelOf nivel del producto en la snapshot (0 si no tiene movimientos).
func (s Snapshot) LevelOf(productID string) int64 {
	return s.Levels[productID]
}

// CategoryTotal unidades en stock de una categoría.
type CategoryTotal struct {
	Category string
	Units    int64
}

// DailyMovements flujo de un día: unidades recibidas y despachadas.
type DailyMovements struct {
	Day      time.Time // 00:00 del día en la zona de la ventana
	Received int64
	Shipped  int64
}

// Window rango de días calendario, ambos extremos inclusive, en la zona de From.
type Window struct {
	From time.Time
	To   time.Time
}

// LastDays ventana de n días que termina en el día de now (inclusive).
func LastDays(now time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	end := startOfDay(now)
	return Window{From: end.AddDate(0, 0, -(n - 1)), To: end}
}

// Days días calendario de la ventana. Error de validación si está invertida o es demasiado larga.
func (w Window) Days() ([]time.Time, error) {
	from := startOfDay(w.From)
	to := startOfDay(w.To.In(w.From.Location()))
	if to.Before(from) {
		return nil, domain.NewValidationError("window", "la fecha final es anterior a la inicial")
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		if len(days) > MaxWindowDays {
			return nil, domain.NewValidationError("window", "la ventana supera el máximo de días")
		}
	}
	return days, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TotalInventoryValue Σ nivel × costo sobre los productos del catálogo.
func TotalInventoryValue(s Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Products {
		total = total.Add(p.CostPrice.Mul(decimal.NewFromInt(s.LevelOf(p.ID))))
	}
	return total
}

// InventoryByCategory Σ nivel por categoría distinta, ordenado por nombre de categoría.
func InventoryByCategory(s Snapshot) []CategoryTotal {
	units := make(map[string]int64)
	for _, p := range s.Products {
		units[p.Category] += s.LevelOf(p.ID)
	}
	out := make([]CategoryTotal, 0, len(units))
	for cat, n := range units {
		out = append(out, CategoryTotal{Category: cat, Units: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// LowStock productos de la snapshot con nivel ≤ punto de reorden, ordenados por SKU.
func LowStock(s Snapshot) []entity.Product {
	var out []entity.Product
	for _, p := range s.Products {
		if IsLow(s.LevelOf(p.ID), p.ReorderPoint) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// MovementsByDay totales diarios de la ventana, con días sin movimientos en cero.
// received suma deltas positivos de tipo received; shipped suma |deltas negativos| de tipo shipped.
// Los ajustes son correcciones, no flujo: se excluyen.
func MovementsByDay(movements []entity.StockMovement, w Window) ([]DailyMovements, error) {
	days, err := w.Days()
	if err != nil {
		return nil, err
	}
	loc := w.From.Location()
	out := make([]DailyMovements, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		out[i] = DailyMovements{Day: d}
		index[d.Format(time.DateOnly)] = i
	}
	for _, m := range movements {
		i, ok := index[m.CreatedAt.In(loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		switch {
		case m.Kind == entity.MovementReceived && m.Quantity > 0:
			out[i].Received += m.Quantity
		case m.Kind == entity.MovementShipped && m.Quantity < 0:
			out[i].Shipped += -m.Quantity
		}
	}
	return out, nil
}
