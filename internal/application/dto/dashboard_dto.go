package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los valores salen de una misma snapshot de catálogo + ledger.
type DashboardSummaryDTO struct {
	TotalProducts       int                `json:"total_products"`
	LowStockItems       int                `json:"low_stock_items"`
	TotalMovements      int                `json:"total_movements"`
	TotalInventoryValue decimal.Decimal    `json:"total_inventory_value"` // Σ nivel × costo
	InventoryByCategory []CategoryTotalDTO `json:"inventory_by_category"`
	MovementsByDay      []DailyMovementDTO `json:"movements_by_day"`
	LowStock            []ProductResponse  `json:"low_stock"`
}

// CategoryTotalDTO unidades en stock por categoría.
type CategoryTotalDTO struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DailyMovementDTO unidades recibidas y despachadas en un día.
type DailyMovementDTO struct {
	Date     string `json:"date"` // AAAA-MM-DD
	Day      string `json:"day"`  // Monday, Tuesday, ...
	Received int64  `json:"received"`
	Shipped  int64  `json:"shipped"`
}
