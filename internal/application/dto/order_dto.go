package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// OrderItemRequest línea de pedido.
type OrderItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders (registro histórico).
type CreateOrderRequest struct {
	OrderNumber string             `json:"order_number" validate:"required,max=50"`
	Customer    string             `json:"customer" validate:"required,max=200"`
	Date        *time.Time         `json:"date"`
	Status      string             `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"order_number"`
	Customer    string              `json:"customer"`
	Date        time.Time           `json:"date"`
	Status      string              `json:"status"`
	Total       decimal.Decimal     `json:"total"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderListResponse lista de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// NewOrderResponse mapea un pedido.
func NewOrderResponse(o entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer:    o.Customer,
		Date:        o.Date,
		Status:      string(o.Status),
		Total:       o.Total,
		Items:       items,
	}
}

// NewOrderListResponse mapea una lista de pedidos.
func NewOrderListResponse(list []entity.Order) OrderListResponse {
	items := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, NewOrderResponse(o))
	}
	return OrderListResponse{Items: items, Page: PageResponse{Total: len(items)}}
}
