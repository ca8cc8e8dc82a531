package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var errDiscoLleno = errors.New("disco lleno")

// stepClock reloj determinista que avanza un segundo por llamada.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// memProductRepo repositorio en memoria con fallo inyectable.
type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	fail     error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// memMovementRepo ledger en memoria con fallo inyectable.
type memMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
	fail      error
}

func (r *memMovementRepo) Append(_ context.Context, m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListAll(_ context.Context) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockMovement, len(r.movements))
	for i, m := range r.movements {
		cp := *m
		out[i] = &cp
	}
	// Devolver desordenado a propósito: Restore debe ordenar por secuencia
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// memRunner TxRunner sobre los repos en memoria.
type memRunner struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
}

func (r memRunner) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(r.products, r.movements)
}

// recordingListener guarda los eventos recibidos.
type recordingListener struct {
	mu     sync.Mutex
	events []inventory.MovementEvent
	err    error
}

func (l *recordingListener) OnMovement(_ context.Context, evt inventory.MovementEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
	return l.err
}

func (l *recordingListener) Events() []inventory.MovementEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]inventory.MovementEvent(nil), l.events...)
}

func newTestStore(deps inventory.StoreDeps) *inventory.Store {
	if deps.Clock == nil {
		deps.Clock = newStepClock().Now
	}
	return inventory.NewStore(deps)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func i64(n int64) *int64 { return &n }

func str(s string) *string { return &s }

// createProduct da de alta un producto válido y falla el test si no puede.
func createProduct(t *testing.T, s *inventory.Store, sku, category string, reorderPoint int64) *entity.Product {
	t.Helper()
	p, err := s.CreateProduct(context.Background(), inventory.ProductDraft{
		Name:         "Producto " + sku,
		SKU:          sku,
		Category:     category,
		Price:        dec("20.00"),
		CostPrice:    dec("12.50"),
		ReorderPoint: i64(reorderPoint),
	})
	require.NoError(t, err)
	return p
}

func appendOK(t *testing.T, s *inventory.Store, productID string, kind entity.MovementKind, qty int64) *entity.StockMovement {
	t.Helper()
	m, err := s.Append(context.Background(), productID, kind, qty, "")
	require.NoError(t, err)
	return m
}
