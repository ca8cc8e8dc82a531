// Package orders mantiene el historial de pedidos. Es de solo consulta para el inventario:
// no descuenta stock del ledger al despachar o entregar un pedido.
package orders

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// OrderDraft datos para registrar un pedido histórico.
type OrderDraft struct {
	OrderNumber string
	Customer    string
	Date        time.Time          // cero = ahora
	Status      entity.OrderStatus // vacío = pending
	Items       []entity.OrderItem
}

// OrderFilter filtro de listado. Customer busca como subcadena sin distinguir mayúsculas.
type OrderFilter struct {
	Status   entity.OrderStatus
	Customer string
}

// OrderUseCase almacén propio de pedidos, independiente del Store de inventario.
type OrderUseCase struct {
	mu       sync.RWMutex
	orders   map[string]*entity.Order
	byNumber map[string]string
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:   make(map[string]*entity.Order),
		byNumber: make(map[string]string),
		log:      log,
		now:      time.Now,
	}
}

// Record registra un pedido. El total se calcula de las líneas, no del catálogo actual.
func (uc *OrderUseCase) Record(_ context.Context, in OrderDraft) (*entity.Order, error) {
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		return nil, domain.NewValidationError("order_number", "es requerido")
	}
	if strings.TrimSpace(in.Customer) == "" {
		return nil, domain.NewValidationError("customer", "es requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "el pedido debe tener al menos una línea")
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return nil, domain.NewValidationError("items.product_id", "es requerido")
		}
		if it.Quantity <= 0 {
			return nil, domain.NewValidationError("items.quantity", "debe ser positivo")
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.NewValidationError("items.unit_price", "no puede ser negativo")
		}
	}
	status := in.Status
	if status == "" {
		status = entity.OrderPending
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido: "+string(status))
	}
	date := in.Date
	if date.IsZero() {
		date = uc.now()
	}

	order := &entity.Order{
		ID:          uuid.New().String(),
		OrderNumber: number,
		Customer:    strings.TrimSpace(in.Customer),
		Date:        date,
		Status:      status,
		Items:       append([]entity.OrderItem(nil), in.Items...),
		UpdatedAt:   uc.now(),
	}
	order.Total = order.ComputeTotal()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	key := strings.ToUpper(number)
	if _, taken := uc.byNumber[key]; taken {
		return nil, &domain.ValidationError{Field: "order_number", Reason: "ya existe: " + number, Cause: domain.ErrDuplicate}
	}
	uc.orders[order.ID] = order
	uc.byNumber[key] = order.ID
	return cloneOrder(order), nil
}

// GetByID obtiene un pedido por ID.
func (uc *OrderUseCase) GetByID(id string) (*entity.Order, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	o, ok := uc.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("pedido", id)
	}
	return cloneOrder(o), nil
}

// List lista pedidos filtrados, del más reciente al más antiguo.
func (uc *OrderUseCase) List(filter OrderFilter) []entity.Order {
	customer := strings.ToLower(strings.TrimSpace(filter.Customer))

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]entity.Order, 0, len(uc.orders))
	for _, o := range uc.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(o.Customer), customer) {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].OrderNumber > out[j].OrderNumber
	})
	return out
}

// Transition cambia el estado respetando la máquina pending → processing → shipped → delivered,
// con cancelled desde cualquier estado no terminal.
func (uc *OrderUseCase) Transition(_ context.Context, id string, next entity.OrderStatus) (*entity.Order, error) {
	if !next.Valid() {
		return nil, domain.NewValidationError("status", "estado desconocido: "+string(next))
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	o, ok := uc.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("pedido", id)
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, &domain.ValidationError{
			Field:  "status",
			Reason: string(o.Status) + " → " + string(next),
			Cause:  domain.ErrInvalidTransition,
		}
	}
	prev := o.Status
	o.Status = next
	o.UpdatedAt = uc.now()
	uc.log.Info().Str("order", o.OrderNumber).Str("from", string(prev)).Str("to", string(next)).Msg("estado de pedido actualizado")
	return cloneOrder(o), nil
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp
}
