// Package seed carga el catálogo, movimientos, proveedores y pedidos de demostración.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/application/orders"
	"github.com/jhoicas/inventory-dashboard/internal/application/usecase"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// Catalog lo que el seed usa del Store.
type Catalog interface {
	CreateProduct(ctx context.Context, in inventory.ProductDraft) (*entity.Product, error)
	Append(ctx context.Context, productID string, kind entity.MovementKind, quantity int64, reference string) (*entity.StockMovement, error)
	ListProducts(filter inventory.ProductFilter) []entity.Product
}

// Result conteo de lo cargado.
type Result struct {
	Products  int
	Movements int
	Suppliers int
	Orders    int
}

type demoProduct struct {
	name, sku, category string
	price, cost         string
	opening             int64 // recepción inicial
	reorderPoint        int64
	supplier            string
}

var demoProducts = []demoProduct{
	{"Wireless Earbuds", "WE-001", "Electronics", "79.99", "45.00", 120, 20, "TechGadget Inc."},
	{"Laptop Backpack", "LB-002", "Accessories", "59.99", "32.50", 45, 10, "BagMasters Co."},
	{"Smart Watch", "SW-003", "Electronics", "249.99", "175.00", 18, 15, "TechGadget Inc."},
	{"Bluetooth Speaker", "BS-004", "Electronics", "89.99", "56.25", 62, 25, "SoundWave Electronics"},
	{"USB-C Cable", "UC-005", "Accessories", "14.99", "4.50", 250, 50, "CablePro Supply"},
	{"Wireless Mouse", "WM-006", "Electronics", "29.99", "15.75", 85, 30, "CompTech Solutions"},
}

type demoMovement struct {
	sku      string
	kind     entity.MovementKind
	quantity int64 // magnitud para received/shipped, con signo para adjusted
	ref      string
}

var demoMovements = []demoMovement{
	{"WE-001", entity.MovementReceived, 50, "PO-2023-001"},
	{"WE-001", entity.MovementShipped, 8, "ORD-2023-001"},
	{"SW-003", entity.MovementReceived, 25, "PO-2023-002"},
	{"SW-003", entity.MovementShipped, 4, "ORD-2023-001"},
	{"BS-004", entity.MovementShipped, 3, "ORD-2023-002"},
	{"LB-002", entity.MovementAdjusted, -2, "INV-ADJ-001"},
}

var demoSuppliers = []usecase.SupplierInput{
	{Name: "TechGadget Inc.", ContactPerson: "John Smith", Email: "john@techgadget.com", Phone: "555-1234", Address: "123 Tech Blvd, San Francisco, CA 94107"},
	{Name: "BagMasters Co.", ContactPerson: "Lisa Johnson", Email: "lisa@bagmasters.com", Phone: "555-2345", Address: "456 Fashion Ave, New York, NY 10018"},
	{Name: "SoundWave Electronics", ContactPerson: "Mike Chen", Email: "mike@soundwave.com", Phone: "555-3456", Address: "789 Audio Ln, Austin, TX 78701"},
	{Name: "CablePro Supply", ContactPerson: "Sarah Wilson", Email: "sarah@cablepro.com", Phone: "555-4567", Address: "101 Connect St, Seattle, WA 98101"},
	{Name: "CompTech Solutions", ContactPerson: "David Lee", Email: "david@comptech.com", Phone: "555-5678", Address: "202 Computer Rd, Boston, MA 02108", Status: entity.SupplierInactive},
}

type demoLine struct {
	sku      string
	quantity int64
}

type demoOrder struct {
	number, customer, date string
	status                 entity.OrderStatus
	lines                  []demoLine
}

var demoOrders = []demoOrder{
	{"ORD-2023-001", "Acme Corp", "2023-06-15", entity.OrderDelivered, []demoLine{{"WE-001", 5}, {"SW-003", 4}}},
	{"ORD-2023-002", "Global Industries", "2023-06-18", entity.OrderShipped, []demoLine{{"BS-004", 3}, {"WM-006", 11}}},
	{"ORD-2023-003", "Tech Solutions Ltd", "2023-06-20", entity.OrderProcessing, []demoLine{{"LB-002", 7}, {"UC-005", 15}, {"WE-001", 3}}},
	{"ORD-2023-004", "StartUp Innovations", "2023-06-22", entity.OrderPending, []demoLine{{"SW-003", 6}}},
}

// LoadCatalog carga productos y movimientos si el catálogo está vacío.
// Cada producto entra con una recepción OPENING-<SKU> por su stock inicial.
func LoadCatalog(ctx context.Context, store Catalog, log zerolog.Logger) (Result, error) {
	var res Result
	if len(store.ListProducts(inventory.ProductFilter{})) > 0 {
		log.Info().Msg("catálogo no vacío, se omite el seed de demostración")
		return res, nil
	}

	ids := make(map[string]string, len(demoProducts))
	for _, d := range demoProducts {
		price := decimal.RequireFromString(d.price)
		cost := decimal.RequireFromString(d.cost)
		rp := d.reorderPoint
		p, err := store.CreateProduct(ctx, inventory.ProductDraft{
			Name:         d.name,
			SKU:          d.sku,
			Category:     d.category,
			Price:        &price,
			CostPrice:    &cost,
			ReorderPoint: &rp,
			Supplier:     d.supplier,
			ImageURL:     "https://placehold.co/200x200",
		})
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", d.sku, err)
		}
		ids[d.sku] = p.ID
		res.Products++

		if _, err := store.Append(ctx, p.ID, entity.MovementReceived, d.opening, "OPENING-"+d.sku); err != nil {
			return res, fmt.Errorf("seed opening %s: %w", d.sku, err)
		}
		res.Movements++
	}

	for _, m := range demoMovements {
		if _, err := store.Append(ctx, ids[m.sku], m.kind, m.quantity, m.ref); err != nil {
			return res, fmt.Errorf("seed movement %s: %w", m.ref, err)
		}
		res.Movements++
	}

	log.Info().Int("products", res.Products).Int("movements", res.Movements).Msg("catálogo de demostración cargado")
	return res, nil
}

// LoadDirectory carga proveedores y pedidos históricos. Las líneas de pedido toman
// id, nombre y precio del catálogo actual por SKU; los SKU ausentes se omiten.
func LoadDirectory(ctx context.Context, store Catalog, suppliers *usecase.SupplierUseCase, orderUC *orders.OrderUseCase, log zerolog.Logger) (Result, error) {
	var res Result
	if len(suppliers.List(usecase.SupplierFilter{})) == 0 {
		for _, s := range demoSuppliers {
			if _, err := suppliers.Create(s); err != nil {
				return res, fmt.Errorf("seed supplier %s: %w", s.Name, err)
			}
			res.Suppliers++
		}
	}

	if len(orderUC.List(orders.OrderFilter{})) > 0 {
		return res, nil
	}
	bySKU := make(map[string]entity.Product)
	for _, p := range store.ListProducts(inventory.ProductFilter{}) {
		bySKU[p.SKU] = p
	}
	for _, o := range demoOrders {
		date, err := time.Parse(time.DateOnly, o.date)
		if err != nil {
			return res, fmt.Errorf("seed order %s: %w", o.number, err)
		}
		var items []entity.OrderItem
		for _, l := range o.lines {
			p, ok := bySKU[l.sku]
			if !ok {
				continue
			}
			items = append(items, entity.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    l.quantity,
				UnitPrice:   p.Price,
			})
		}
		if len(items) == 0 {
			continue
		}
		if _, err := orderUC.Record(ctx, orders.OrderDraft{
			OrderNumber: o.number,
			Customer:    o.customer,
			Date:        date,
			Status:      o.status,
			Items:       items,
		}); err != nil {
			return res, fmt.Errorf("seed order %s: %w", o.number, err)
		}
		res.Orders++
	}

	log.Info().Int("suppliers", res.Suppliers).Int("orders", res.Orders).Msg("directorio de demostración cargado")
	return res, nil
}
