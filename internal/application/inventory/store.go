// Package inventory implementa el núcleo del inventario: catálogo, ledger de movimientos
// y proyección de stock, todo en un único Store con un solo dueño.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/repository"
)

// StoreDeps dependencias opcionales del Store. Todas pueden ir en cero:
// sin repositorios el Store vive solo en memoria.
type StoreDeps struct {
	ProductRepo  repository.ProductRepository
	MovementRepo repository.StockMovementRepository
	Listeners    []MovementListener
	Logger       *zerolog.Logger // nil = sin logs
	Clock        func() time.Time
}

// Store dueño único del catálogo, del ledger y de los totales acumulados por producto.
//
// Disciplina de concurrencia: un RWMutex global. Toda mutación (alta/edición/baja de producto,
// append) toma el bloqueo de escritura durante leer-validar-persistir-confirmar; las lecturas
// toman el de lectura y ven siempre un prefijo completo del ledger.
type Store struct {
	mu sync.RWMutex

	products  map[string]*entity.Product
	skus      map[string]string // sku normalizado → id de producto
	movements []entity.StockMovement
	byProduct map[string][]int // id de producto → índices en movements
	totals    map[string]int64 // suma sin acotar de deltas por producto
	lastSeq   int64
	lastAt    time.Time

	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	listeners    []MovementListener
	log          zerolog.Logger
	now          func() time.Time

	// notifyMu/notifyCond ordenan la entrega a listeners por secuencia:
	// el evento N espera a que N-1 haya sido entregado.
	notifyMu    sync.Mutex
	notifyCond  *sync.Cond
	notifiedSeq int64
}

// NewStore construye un Store vacío.
func NewStore(deps StoreDeps) *Store {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	log := zerolog.Nop()
	if deps.Logger != nil {
		log = *deps.Logger
	}
	s := &Store{
		products:     make(map[string]*entity.Product),
		skus:         make(map[string]string),
		byProduct:    make(map[string][]int),
		totals:       make(map[string]int64),
		productRepo:  deps.ProductRepo,
		movementRepo: deps.MovementRepo,
		listeners:    deps.Listeners,
		log:          log,
		now:          clock,
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	return s
}

// AddListener registra un listener adicional. Usar antes de empezar a servir tráfico.
func (s *Store) AddListener(l MovementListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Restore reemplaza el estado en memoria con lo persistido (catálogo + ledger completo)
// y recalcula los totales replegando el ledger en orden de secuencia.
func (s *Store) Restore(ctx context.Context, runner TxRunner) error {
	var (
		products  []*entity.Product
		movements []*entity.StockMovement
	)
	err := runner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		var err error
		if products, err = productRepo.ListAll(ctx); err != nil {
			return err
		}
		movements, err = movementRepo.ListAll(ctx)
		return err
	})
	if err != nil {
		return storageErr("restore", err)
	}

	sort.Slice(movements, func(i, j int) bool { return movements[i].ID < movements[j].ID })
	sums := make(map[string]int64)
	for i, m := range movements {
		if m.ID <= 0 || (i > 0 && m.ID == movements[i-1].ID) {
			return fmt.Errorf("restore: secuencia de ledger inválida en %d", m.ID)
		}
		if domaininv.AddOverflows(sums[m.ProductID], m.Quantity) {
			return fmt.Errorf("restore: total de %s fuera de rango en %d", m.ProductID, m.ID)
		}
		sums[m.ProductID] += m.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[string]*entity.Product, len(products))
	s.skus = make(map[string]string, len(products))
	for _, p := range products {
		cp := *p
		s.products[cp.ID] = &cp
		s.skus[skuKey(cp.SKU)] = cp.ID
	}
	s.movements = make([]entity.StockMovement, 0, len(movements))
	s.byProduct = make(map[string][]int)
	s.totals = make(map[string]int64)
	s.lastSeq, s.lastAt = 0, time.Time{}
	for _, m := range movements {
		s.commitLocked(*m)
	}
	s.notifyMu.Lock()
	s.notifiedSeq = s.lastSeq
	s.notifyCond.Broadcast()
	s.notifyMu.Unlock()

	s.log.Info().
		Int("products", len(s.products)).
		Int("movements", len(s.movements)).
		Int64("last_seq", s.lastSeq).
		Msg("estado de inventario restaurado")
	return nil
}

// Snapshot copia consistente de catálogo + ledger para los agregados.
func (s *Store) Snapshot() domaininv.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domaininv.Snapshot{
		Products:  make([]entity.Product, 0, len(s.products)),
		Levels:    make(map[string]int64, len(s.products)),
		Movements: make([]entity.StockMovement, len(s.movements)),
		TakenAt:   s.now(),
	}
	for id, p := range s.products {
		snap.Products = append(snap.Products, *p)
		snap.Levels[id] = domaininv.ClampLevel(s.totals[id])
	}
	sortProducts(snap.Products)
	copy(snap.Movements, s.movements)
	return snap
}

// commitLocked agrega un movimiento ya persistido y actualiza el total acumulado. Requiere mu tomado.
func (s *Store) commitLocked(m entity.StockMovement) {
	s.movements = append(s.movements, m)
	s.byProduct[m.ProductID] = append(s.byProduct[m.ProductID], len(s.movements)-1)
	s.totals[m.ProductID] += m.Quantity
	s.lastSeq = m.ID
	if m.CreatedAt.After(s.lastAt) {
		s.lastAt = m.CreatedAt
	}
}

// storageErr envuelve un fallo de persistencia salvo que ya sea un StorageError.
func storageErr(op string, err error) error {
	var se *domain.StorageError
	if errors.As(err, &se) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

func sortProducts(list []entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].SKU < list[j].SKU
	})
}
