// Package analytics contiene los casos de uso del dashboard: agregados derivados
// del catálogo y del ledger de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	domaininv "github.com/jhoicas/inventory-dashboard/internal/domain/inventory"
)

// DefaultDashboardDays días del gráfico de movimientos cuando el llamador no indica ventana.
const DefaultDashboardDays = 7

// SnapshotSource fuente de snapshots consistentes (implementada por inventory.Store).
type SnapshotSource interface {
	Snapshot() domaininv.Snapshot
}

// DashboardUseCase genera los agregados del dashboard.
//
// Sin vista materializada: cada llamada toma una snapshot nueva, así el resultado
// refleja el estado del ledger al momento de la llamada.
type DashboardUseCase struct {
	source SnapshotSource
	loc    *time.Location
}

// NewDashboardUseCase construye el caso de uso. loc define el corte de día (nil = UTC).
func NewDashboardUseCase(source SnapshotSource, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{source: source, loc: loc}
}

// Location zona horaria usada para el corte de días.
func (uc *DashboardUseCase) Location() *time.Location { return uc.loc }

// GetSummary construye el DashboardSummaryDTO para la ventana indicada.
//
// Una sola snapshot y tres cálculos en paralelo:
//  1. TotalInventoryValue   → valor del inventario
//  2. InventoryByCategory   → torta por categoría
//  3. MovementsByDay(window) → barras recibido/despachado
func (uc *DashboardUseCase) GetSummary(ctx context.Context, window domaininv.Window) (*dto.DashboardSummaryDTO, error) {
	snap := uc.source.Snapshot()

	type valueResult struct {
		total decimal.Decimal
	}
	type categoryResult struct {
		totals []domaininv.CategoryTotal
	}
	type dailyResult struct {
		days []domaininv.DailyMovements
		err  error
	}

	valueCh := make(chan valueResult, 1)
	categoryCh := make(chan categoryResult, 1)
	dailyCh := make(chan dailyResult, 1)

	go func() {
		valueCh <- valueResult{domaininv.TotalInventoryValue(snap)}
	}()
	go func() {
		categoryCh <- categoryResult{domaininv.InventoryByCategory(snap)}
	}()
	go func() {
		days, err := domaininv.MovementsByDay(snap.Movements, uc.inLocation(window))
		dailyCh <- dailyResult{days, err}
	}()

	value := <-valueCh
	categories := <-categoryCh
	daily := <-dailyCh

	if daily.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos por día: %w", daily.err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	low := domaininv.LowStock(snap)
	lowDTO := make([]dto.ProductResponse, 0, len(low))
	for _, p := range low {
		lowDTO = append(lowDTO, dto.NewProductResponse(p))
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:       len(snap.Products),
		LowStockItems:       len(low),
		TotalMovements:      len(snap.Movements),
		TotalInventoryValue: value.total.Round(2),
		InventoryByCategory: toCategoryDTO(categories.totals),
		MovementsByDay:      toDailyDTO(daily.days),
		LowStock:            lowDTO,
	}, nil
}

// MovementsByDay solo el gráfico de barras para una ventana arbitraria.
func (uc *DashboardUseCase) MovementsByDay(window domaininv.Window) ([]dto.DailyMovementDTO, error) {
	snap := uc.source.Snapshot()
	days, err := domaininv.MovementsByDay(snap.Movements, uc.inLocation(window))
	if err != nil {
		return nil, err
	}
	return toDailyDTO(days), nil
}

// LastDays ventana de n días que termina hoy en la zona del dashboard.
func (uc *DashboardUseCase) LastDays(now time.Time, n int) domaininv.Window {
	return domaininv.LastDays(now.In(uc.loc), n)
}

func (uc *DashboardUseCase) inLocation(w domaininv.Window) domaininv.Window {
	return domaininv.Window{From: w.From.In(uc.loc), To: w.To.In(uc.loc)}
}

func toCategoryDTO(totals []domaininv.CategoryTotal) []dto.CategoryTotalDTO {
	out := make([]dto.CategoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalDTO{Name: t.Category, Value: t.Units})
	}
	return out
}

func toDailyDTO(days []domaininv.DailyMovements) []dto.DailyMovementDTO {
	out := make([]dto.DailyMovementDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailyMovementDTO{
			Date:     d.Day.Format(time.DateOnly),
			Day:      d.Day.Weekday().String(),
			Received: d.Received,
			Shipped:  d.Shipped,
		})
	}
	return out
}
