package entity

import "time"

// Estados de proveedor.
const (
	SupplierActive   = "active"
	SupplierInactive = "inactive"
)

// Supplier proveedor referenciado por los productos (por nombre o id).
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Status        string // active, inactive
	CreatedAt     time.Time
}
