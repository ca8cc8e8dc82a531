package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock NO se guarda aquí: se deriva de los movimientos del ledger.
type Product struct {
	ID           string
	Name         string
	SKU          string          // único en el catálogo
	Category     string          // etiqueta libre
	Price        decimal.Decimal // precio de venta
	CostPrice    decimal.Decimal // costo unitario, usado para valorizar inventario
	ReorderPoint int64           // umbral de stock bajo (inclusive)
	Supplier     string          // nombre o id del proveedor
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
