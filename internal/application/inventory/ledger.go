package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// MovementFilter filtro del escaneo crudo del ledger. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID string
	Kind      entity.MovementKind
	From      *time.Time
	To        *time.Time
}

// DefaultReference referencia generada cuando el llamador no envía una: STOCK-AAAA-MM-DD.
func DefaultReference(at time.Time) string {
	return "STOCK-" + at.Format(time.DateOnly)
}

// Append registra un movimiento. Es el único punto de entrada que cambia el stock.
//
// received y shipped reciben la magnitud (> 0) y el signo lo pone el tipo;
// adjusted recibe el delta con signo (≠ 0). Falla con ValidationError antes de tocar
// el estado y con NotFoundError si el producto no está en el catálogo.
func (s *Store) Append(ctx context.Context, productID string, kind entity.MovementKind, quantity int64, reference string) (*entity.StockMovement, error) {
	delta, err := domaininv.SignedDelta(kind, quantity)
	if err != nil {
		return nil, err
	}

	evt, err := s.appendLocked(ctx, productID, kind, delta, reference)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("seq", evt.Movement.ID).
		Str("product_id", productID).
		Str("kind", string(kind)).
		Int64("delta", delta).
		Int64("level", evt.Level).
		Bool("low_stock", evt.LowStock).
		Msg("movimiento registrado")

	s.notify(ctx, evt)
	out := evt.Movement
	return &out, nil
}

// appendLocked asigna secuencia y timestamp, persiste y confirma bajo el bloqueo de escritura.
func (s *Store) appendLocked(ctx context.Context, productID string, kind entity.MovementKind, delta int64, reference string) (MovementEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[productID]
	if !ok {
		return MovementEvent{}, domain.NewNotFoundError("producto", productID)
	}

	if domaininv.AddOverflows(s.totals[productID], delta) {
		return MovementEvent{}, domain.NewValidationError("quantity", "el total acumulado del producto se sale de rango")
	}

	at := s.now()
	if at.Before(s.lastAt) {
		at = s.lastAt
	}
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = DefaultReference(at)
	}
	mov := entity.StockMovement{
		ID:        s.lastSeq + 1,
		ProductID: productID,
		Kind:      kind,
		Quantity:  delta,
		Reference: ref,
		CreatedAt: at,
	}
	if s.movementRepo != nil {
		if err := s.movementRepo.Append(ctx, &mov); err != nil {
			return MovementEvent{}, storageErr("append movement", err)
		}
	}
	s.commitLocked(mov)

	level := domaininv.ClampLevel(s.totals[productID])
	return MovementEvent{
		Movement:    mov,
		ProductName: product.Name,
		SKU:         product.SKU,
		Level:       level,
		LowStock:    domaininv.IsLow(level, product.ReorderPoint),
	}, nil
}

// notify entrega el evento a los listeners en orden de secuencia aunque los appends
// concurrentes terminen desordenados. Un listener no debe llamar a Append.
func (s *Store) notify(ctx context.Context, evt MovementEvent) {
	seq := evt.Movement.ID
	s.notifyMu.Lock()
	for s.notifiedSeq < seq-1 {
		s.notifyCond.Wait()
	}
	s.notifyMu.Unlock()
	defer func() {
		s.notifyMu.Lock()
		if seq > s.notifiedSeq {
			s.notifiedSeq = seq
		}
		s.notifyCond.Broadcast()
		s.notifyMu.Unlock()
	}()

	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, l := range listeners {
		if err := l.OnMovement(ctx, evt); err != nil {
			s.log.Warn().Err(err).Int64("seq", evt.Movement.ID).Msg("listener de movimientos falló")
		}
	}
}

// Movements escaneo crudo del ledger en orden de append. Incluye movimientos de productos
// ya eliminados del catálogo (el historial es inmutable).
func (s *Store) Movements(filter MovementFilter) []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	source := s.movements
	if filter.ProductID != "" {
		idx := s.byProduct[filter.ProductID]
		source = make([]entity.StockMovement, len(idx))
		for i, j := range idx {
			source[i] = s.movements[j]
		}
	}
	out := make([]entity.StockMovement, 0, len(source))
	for _, m := range source {
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// LedgerLength cantidad de movimientos registrados.
func (s *Store) LedgerLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movements)
}
