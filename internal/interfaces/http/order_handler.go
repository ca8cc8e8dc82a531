package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/orders"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// OrderHandler maneja el historial de pedidos.
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pedido
// @Description  Registro histórico: no genera movimientos de stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	draft := orders.OrderDraft{
		OrderNumber: in.OrderNumber,
		Customer:    in.Customer,
		Status:      entity.OrderStatus(in.Status),
		Items:       make([]entity.OrderItem, 0, len(in.Items)),
	}
	if in.Date != nil {
		draft.Date = *in.Date
	}
	for _, it := range in.Items {
		draft.Items = append(draft.Items, entity.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	order, err := h.uc.Record(c.Context(), draft)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(*order))
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(*order))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        status    query  string  false  "Estado"
// @Param        customer  query  string  false  "Cliente (subcadena)"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list := h.uc.List(orders.OrderFilter{
		Status:   entity.OrderStatus(c.Query("status")),
		Customer: c.Query("customer"),
	})
	return c.JSON(dto.NewOrderListResponse(list))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	order, err := h.uc.Transition(c.Context(), c.Params("id"), entity.OrderStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(*order))
}
