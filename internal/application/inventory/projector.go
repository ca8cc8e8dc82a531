package inventory

import (
	"sort"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// StockView nivel actual de un producto con su contexto para la UI de stock.
type StockView struct {
	Product      entity.Product
	Level        int64
	LowStock     bool
	LastMovement *entity.StockMovement
}

// LevelOf nivel actual = max(0, Σ deltas). Solo para productos del catálogo.
func (s *Store) LevelOf(productID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.products[productID]; !ok {
		return 0, domain.NewNotFoundError("producto", productID)
	}
	return domaininv.ClampLevel(s.totals[productID]), nil
}

// IsLowStock nivel ≤ punto de reorden.
func (s *Store) IsLowStock(productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return false, domain.NewNotFoundError("producto", productID)
	}
	return domaininv.IsLow(domaininv.ClampLevel(s.totals[productID]), p.ReorderPoint), nil
}

// LowStockProducts productos del catálogo en o bajo su punto de reorden, ordenados por SKU.
func (s *Store) LowStockProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Product
	for id, p := range s.products {
		if domaininv.IsLow(domaininv.ClampLevel(s.totals[id]), p.ReorderPoint) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// LastMovement último movimiento del producto (mayor timestamp; empate por secuencia).
// ok=false si el producto no tiene movimientos.
func (s *Store) LastMovement(productID string) (*entity.StockMovement, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.products[productID]; !ok {
		return nil, false, domain.NewNotFoundError("producto", productID)
	}
	m, ok := s.lastMovementLocked(productID)
	return m, ok, nil
}

// StockOf producto + nivel + bandera de stock bajo + último movimiento, en una sola lectura.
func (s *Store) StockOf(productID string) (*StockView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.NewNotFoundError("producto", productID)
	}
	level := domaininv.ClampLevel(s.totals[productID])
	view := &StockView{
		Product:  *p,
		Level:    level,
		LowStock: domaininv.IsLow(level, p.ReorderPoint),
	}
	if m, ok := s.lastMovementLocked(productID); ok {
		view.LastMovement = m
	}
	return view, nil
}

func (s *Store) lastMovementLocked(productID string) (*entity.StockMovement, bool) {
	idx := s.byProduct[productID]
	if len(idx) == 0 {
		return nil, false
	}
	best := s.movements[idx[0]]
	for _, j := range idx[1:] {
		m := s.movements[j]
		if m.CreatedAt.After(best.CreatedAt) || (m.CreatedAt.Equal(best.CreatedAt) && m.ID > best.ID) {
			best = m
		}
	}
	return &best, true
}
