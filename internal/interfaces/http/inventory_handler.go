package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// InventoryHandler maneja el ledger de movimientos y las consultas de stock.
type InventoryHandler struct {
	store         *inventory.Store
	replenishment *inventory.ReplenishmentUseCase
	loc           *time.Location
}

// NewInventoryHandler construye el handler. loc interpreta las fechas AAAA-MM-DD de los filtros.
func NewInventoryHandler(store *inventory.Store, replenishment *inventory.ReplenishmentUseCase, loc *time.Location) *InventoryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InventoryHandler{store: store, replenishment: replenishment, loc: loc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  received/shipped: quantity es la magnitud (> 0). adjusted: quantity es el delta con signo (≠ 0).
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, kind, quantity, reference opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	mov, err := h.store.Append(c.Context(), in.ProductID, entity.MovementKind(in.Kind), in.Quantity, in.Reference)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(*mov))
}

// ListMovements godoc
// @Summary      Escanear el ledger
// @Description  Incluye movimientos de productos ya eliminados del catálogo.
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  false  "ID de producto"
// @Param        kind        query  string  false  "received | shipped | adjusted"
// @Param        from        query  string  false  "Desde (AAAA-MM-DD, inclusive)"
// @Param        to          query  string  false  "Hasta (AAAA-MM-DD, inclusive)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := inventory.MovementFilter{
		ProductID: c.Query("product_id"),
		Kind:      entity.MovementKind(c.Query("kind")),
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return writeError(c, domain.NewValidationError("kind", "tipo desconocido: "+string(filter.Kind)))
	}
	from, err := parseDay(c.Query("from"), h.loc, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDay(c.Query("to"), h.loc, "to")
	if err != nil {
		return writeError(c, err)
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	filter.From, filter.To = from, to
	return c.JSON(dto.NewMovementListResponse(h.store.Movements(filter)))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos cuyo nivel es menor o igual a su punto de reorden, ordenados por SKU.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/stock/low [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	return c.JSON(dto.NewProductListResponse(h.store.LowStockProducts()))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  SKUs en o bajo su punto de reorden con la cantidad sugerida de pedido,
//
//	ordenados por margen y volumen despachado en los últimos 90 días.
//
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/stock/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list := dto.NewReplenishmentList(h.replenishment.GenerateReplenishmentList(time.Now()))
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// parseDay interpreta AAAA-MM-DD en loc. Vacío = sin filtro.
func parseDay(s string, loc *time.Location, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, se espera AAAA-MM-DD")
	}
	return &t, nil
}
