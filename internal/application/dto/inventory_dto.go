package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// Para received/shipped quantity es la magnitud (> 0); para adjusted es el delta con signo.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Kind      string `json:"kind" validate:"required,oneof=received shipped adjusted"`
	Quantity  int64  `json:"quantity" validate:"required"`
	Reference string `json:"reference" validate:"max=100"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse escaneo del ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockResponse nivel actual de un producto.
type StockResponse struct {
	Product      ProductResponse   `json:"product"`
	Level        int64             `json:"level"`
	LowStock     bool              `json:"low_stock"`
	LastMovement *MovementResponse `json:"last_movement,omitempty"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU en o bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderPoint       int64           `json:"reorder_point"`
	IdealStock         int64           `json:"ideal_stock"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	UnitsShipped       int64           `json:"units_shipped_last_90d"`
	Priority           int             `json:"priority"`
}

// NewMovementResponse mapea un movimiento.
func NewMovementResponse(m entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

// NewMovementListResponse mapea el resultado de un escaneo.
func NewMovementListResponse(list []entity.StockMovement) MovementListResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, NewMovementResponse(m))
	}
	return MovementListResponse{Items: items, Page: PageResponse{Total: len(items)}}
}

// NewStockResponse mapea la vista de stock.
func NewStockResponse(v inventory.StockView) StockResponse {
	out := StockResponse{
		Product:  NewProductResponse(v.Product),
		Level:    v.Level,
		LowStock: v.LowStock,
	}
	if v.LastMovement != nil {
		m := NewMovementResponse(*v.LastMovement)
		out.LastMovement = &m
	}
	return out
}

// NewReplenishmentList mapea las sugerencias de reposición.
func NewReplenishmentList(list []inventory.ReplenishmentSuggestion) []ReplenishmentSuggestionDTO {
	out := make([]ReplenishmentSuggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, ReplenishmentSuggestionDTO{
			ProductID:          s.Product.ID,
			SKU:                s.Product.SKU,
			ProductName:        s.Product.Name,
			CurrentStock:       s.CurrentStock,
			ReorderPoint:       s.Product.ReorderPoint,
			IdealStock:         s.IdealStock,
			SuggestedOrderQty:  s.SuggestedOrderQty,
			EstimatedOrderCost: s.EstimatedOrderCost,
			GrossMarginPct:     s.GrossMarginPct,
			UnitsShipped:       s.UnitsShipped,
			Priority:           s.Priority,
		})
	}
	return out
}
