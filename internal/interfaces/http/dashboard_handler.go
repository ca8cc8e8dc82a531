package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventory-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc          *appanalytics.DashboardUseCase
	defaultDays int
}

// NewDashboardHandler construye el handler. defaultDays ≤ 0 usa appanalytics.DefaultDashboardDays.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, defaultDays int) *DashboardHandler {
	if defaultDays <= 0 {
		defaultDays = appanalytics.DefaultDashboardDays
	}
	return &DashboardHandler{uc: uc, defaultDays: defaultDays}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Description  Totales, valor del inventario, unidades por categoría, stock bajo y
//
//	movimientos por día de los últimos `days` días (hoy incluido).
//
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Días del gráfico (1-366)"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	days := c.QueryInt("days", h.defaultDays)
	if days < 1 || days > domaininv.MaxWindowDays {
		return writeError(c, domain.NewValidationError("days", "fuera de rango"))
	}
	summary, err := h.uc.GetSummary(c.Context(), h.uc.LastDays(time.Now(), days))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// MovementsByDay godoc
// @Summary      Movimientos por día
// @Description  Unidades recibidas y despachadas por día en [from, to]. Los ajustes no cuentan.
// @Tags         dashboard
// @Produce      json
// @Param        from  query  string  true  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  true  "Hasta (AAAA-MM-DD)"
// @Success      200   {array}   dto.DailyMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/movements [get]
func (h *DashboardHandler) MovementsByDay(c *fiber.Ctx) error {
	loc := h.uc.Location()
	from, err := parseDay(c.Query("from"), loc, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDay(c.Query("to"), loc, "to")
	if err != nil {
		return writeError(c, err)
	}
	if from == nil || to == nil {
		return writeError(c, domain.NewValidationError("from/to", "ambas fechas son requeridas"))
	}
	days, err := h.uc.MovementsByDay(domaininv.Window{From: *from, To: *to})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(days)
}
