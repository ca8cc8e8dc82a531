package inventory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// Escenario completo: punto de reorden 15, recepción, despacho y ajuste que acota a cero.
func TestAppend_EscenarioPuntoDeReorden(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "P-001", "Electronics", 15)

	level, err := s.LevelOf(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), level)
	low, err := s.IsLowStock(p.ID)
	require.NoError(t, err)
	assert.True(t, low, "sin movimientos el producto está en stock bajo")

	appendOK(t, s, p.ID, entity.MovementReceived, 25)
	level, _ = s.LevelOf(p.ID)
	low, _ = s.IsLowStock(p.ID)
	assert.Equal(t, int64(25), level)
	assert.False(t, low)

	appendOK(t, s, p.ID, entity.MovementShipped, 12)
	level, _ = s.LevelOf(p.ID)
	low, _ = s.IsLowStock(p.ID)
	assert.Equal(t, int64(13), level)
	assert.True(t, low)

	m := appendOK(t, s, p.ID, entity.MovementAdjusted, -20)
	level, _ = s.LevelOf(p.ID)
	assert.Equal(t, int64(0), level, "el nivel se acota a cero")
	assert.Equal(t, int64(-20), m.Quantity, "el ledger guarda el delta sin acotar")
	assert.Equal(t, 3, s.LedgerLength())
}

func TestAppend_RecepcionYDespachoSeCompensan(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "RT-1", "", 0)
	appendOK(t, s, p.ID, entity.MovementReceived, 40)
	before, _ := s.LevelOf(p.ID)

	appendOK(t, s, p.ID, entity.MovementReceived, 17)
	appendOK(t, s, p.ID, entity.MovementShipped, 17)

	after, _ := s.LevelOf(p.ID)
	assert.Equal(t, before, after)
}

func TestAppend_NivelIgualAlFoldDelLedger(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "F-1", "", 0)
	q := createProduct(t, s, "F-2", "", 0)
	appendOK(t, s, p.ID, entity.MovementShipped, 5)
	appendOK(t, s, q.ID, entity.MovementReceived, 9)
	appendOK(t, s, p.ID, entity.MovementReceived, 8)
	appendOK(t, s, p.ID, entity.MovementAdjusted, 2)

	all := s.Movements(inventory.MovementFilter{})
	for _, id := range []string{p.ID, q.ID} {
		level, err := s.LevelOf(id)
		require.NoError(t, err)
		assert.Equal(t, domaininv.Fold(all, id), level)
	}
}

func TestAppend_MagnitudInvalidaNoTocaElLedger(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "INV-1", "", 0)
	appendOK(t, s, p.ID, entity.MovementReceived, 3)

	invalid := []struct {
		kind entity.MovementKind
		qty  int64
	}{
		{entity.MovementReceived, 0},
		{entity.MovementReceived, -1},
		{entity.MovementShipped, 0},
		{entity.MovementShipped, -4},
		{entity.MovementAdjusted, 0},
		{entity.MovementKind("robo"), 2},
	}
	for _, tc := range invalid {
		_, err := s.Append(context.Background(), p.ID, tc.kind, tc.qty, "")
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%s %d debe rechazarse", tc.kind, tc.qty)
	}
	assert.Equal(t, 1, s.LedgerLength())
}

func TestAppend_TotalFueraDeRangoSeRechaza(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "INV-MAX", "", 0)
	appendOK(t, s, p.ID, entity.MovementReceived, math.MaxInt64)

	_, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 1, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = s.Append(context.Background(), p.ID, entity.MovementAdjusted, math.MinInt64, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 1, s.LedgerLength())
	level, err := s.LevelOf(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), level)

	// un despacho sigue siendo válido y baja el total
	appendOK(t, s, p.ID, entity.MovementShipped, 1)
	level, err = s.LevelOf(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-1), level)
}

func TestAppend_ProductoInexistente(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	_, err := s.Append(context.Background(), "no-existe", entity.MovementReceived, 1, "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, s.LedgerLength())
}

func TestAppend_SecuenciaReferenciaYTimestamps(t *testing.T) {
	clock := newStepClock()
	s := newTestStore(inventory.StoreDeps{Clock: clock.Now})
	p := createProduct(t, s, "SEQ-1", "", 0)

	m1, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 1, "  PO-77 ")
	require.NoError(t, err)
	m2 := appendOK(t, s, p.ID, entity.MovementReceived, 1)

	assert.Equal(t, int64(1), m1.ID)
	assert.Equal(t, int64(2), m2.ID)
	assert.Equal(t, "PO-77", m1.Reference)
	assert.Equal(t, inventory.DefaultReference(m2.CreatedAt), m2.Reference)
	assert.Equal(t, "STOCK-2024-03-04", m2.Reference)
	assert.False(t, m2.CreatedAt.Before(m1.CreatedAt))
}

func TestAppend_RelojQueRetrocedeNoRompeElOrden(t *testing.T) {
	base := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Hour), base.Add(-time.Hour)}
	var i int
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at := times[i%len(times)]
		i++
		return at
	}
	s := newTestStore(inventory.StoreDeps{Clock: clock})
	p := createProduct(t, s, "CLK-1", "", 0) // consume base
	m1 := appendOK(t, s, p.ID, entity.MovementReceived, 1)
	m2 := appendOK(t, s, p.ID, entity.MovementReceived, 1)

	assert.Equal(t, base.Add(time.Hour), m1.CreatedAt)
	assert.Equal(t, m1.CreatedAt, m2.CreatedAt, "un reloj que retrocede reutiliza el último timestamp")
}

func TestAppend_ConcurrenteNoPierdeMovimientos(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "CONC-1", "", 0)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 1, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, n, s.LedgerLength())
	level, _ := s.LevelOf(p.ID)
	assert.Equal(t, int64(n), level)

	// Secuencias únicas y consecutivas
	seen := make(map[int64]bool, n)
	for _, m := range s.Movements(inventory.MovementFilter{}) {
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
	}
	for seq := int64(1); seq <= n; seq++ {
		assert.True(t, seen[seq], "falta la secuencia %d", seq)
	}
}

func TestAppend_FalloDeAlmacenamientoNoCambiaNada(t *testing.T) {
	movRepo := &memMovementRepo{}
	listener := &recordingListener{}
	s := newTestStore(inventory.StoreDeps{MovementRepo: movRepo, Listeners: []inventory.MovementListener{listener}})
	p := createProduct(t, s, "ST-1", "", 0)
	appendOK(t, s, p.ID, entity.MovementReceived, 10)

	movRepo.fail = errDiscoLleno
	_, err := s.Append(context.Background(), p.ID, entity.MovementShipped, 4, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.True(t, errors.Is(err, errDiscoLleno), "conserva la causa original")

	level, _ := s.LevelOf(p.ID)
	assert.Equal(t, int64(10), level)
	assert.Equal(t, 1, s.LedgerLength())
	assert.Len(t, listener.Events(), 1, "no se notifica un movimiento que no se confirmó")

	// Recuperado el almacenamiento, la secuencia continúa sin huecos
	movRepo.fail = nil
	m := appendOK(t, s, p.ID, entity.MovementShipped, 4)
	assert.Equal(t, int64(2), m.ID)
}

func TestAppend_NotificaListenersConNivelYBandera(t *testing.T) {
	listener := &recordingListener{err: errors.New("kafka caído")}
	s := newTestStore(inventory.StoreDeps{})
	s.AddListener(listener)
	p := createProduct(t, s, "LS-1", "", 5)

	_, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 6, "")
	require.NoError(t, err, "un listener que falla no deshace el append")
	appendOK(t, s, p.ID, entity.MovementShipped, 1)

	events := listener.Events()
	require.Len(t, events, 2)
	assert.Equal(t, int64(6), events[0].Level)
	assert.False(t, events[0].LowStock)
	assert.Equal(t, int64(5), events[1].Level)
	assert.True(t, events[1].LowStock)
	assert.Equal(t, "LS-1", events[1].SKU)
}

// gateListener retiene la entrega de una secuencia hasta que se libera.
type gateListener struct {
	holdSeq int64
	entered chan struct{}
	release chan struct{}

	mu   sync.Mutex
	seqs []int64
}

func (l *gateListener) OnMovement(_ context.Context, evt inventory.MovementEvent) error {
	if evt.Movement.ID == l.holdSeq {
		close(l.entered)
		<-l.release
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs = append(l.seqs, evt.Movement.ID)
	return nil
}

func (l *gateListener) delivered() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.seqs...)
}

func TestAppend_ListenersRecibenEnOrdenDeSecuencia(t *testing.T) {
	gate := &gateListener{holdSeq: 1, entered: make(chan struct{}), release: make(chan struct{})}
	levels := &recordingListener{}
	s := newTestStore(inventory.StoreDeps{})
	s.AddListener(gate)
	s.AddListener(levels)
	p := createProduct(t, s, "ORD-1", "", 0)

	first := make(chan error, 1)
	go func() {
		_, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 1, "")
		first <- err
	}()
	<-gate.entered

	second := make(chan error, 1)
	go func() {
		_, err := s.Append(context.Background(), p.ID, entity.MovementReceived, 1, "")
		second <- err
	}()

	// el segundo movimiento se confirma pero no se entrega antes que el primero
	require.Eventually(t, func() bool { return s.LedgerLength() == 2 }, time.Second, 5*time.Millisecond)
	require.Never(t, func() bool { return len(gate.delivered()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	close(gate.release)
	require.NoError(t, <-first)
	require.NoError(t, <-second)

	assert.Equal(t, []int64{1, 2}, gate.delivered())
	events := levels.Events()
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[len(events)-1].Level, "el último evento entregado trae el nivel vigente")
}

func TestMovements_FiltrosEIncluyeEliminados(t *testing.T) {
	s := newTestStore(inventory.StoreDeps{})
	p := createProduct(t, s, "MV-1", "", 0)
	q := createProduct(t, s, "MV-2", "", 0)
	appendOK(t, s, p.ID, entity.MovementReceived, 5)
	appendOK(t, s, q.ID, entity.MovementReceived, 7)
	appendOK(t, s, p.ID, entity.MovementShipped, 2)

	require.NoError(t, s.DeleteProduct(context.Background(), p.ID))

	byProduct := s.Movements(inventory.MovementFilter{ProductID: p.ID})
	require.Len(t, byProduct, 2)
	assert.Equal(t, int64(1), byProduct[0].ID)
	assert.Equal(t, int64(3), byProduct[1].ID)

	shipped := s.Movements(inventory.MovementFilter{Kind: entity.MovementShipped})
	require.Len(t, shipped, 1)
	assert.Equal(t, int64(-2), shipped[0].Quantity)

	all := s.Movements(inventory.MovementFilter{})
	future := all[len(all)-1].CreatedAt.Add(time.Hour)
	assert.Empty(t, s.Movements(inventory.MovementFilter{From: &future}))
}
