package usecase

import (
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// SupplierInput datos para dar de alta un proveedor.
type SupplierInput struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Status        string // vacío = active
}

// SupplierPatch edición parcial: solo se aplican los campos no nil.
type SupplierPatch struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Status        *string
}

// SupplierFilter búsqueda libre sobre nombre, contacto y email.
type SupplierFilter struct {
	Query string
}

// SupplierView proveedor con la cantidad de productos del catálogo que lo referencian.
type SupplierView struct {
	entity.Supplier
	ProductsSupplied int
}

// CatalogReader lectura del catálogo (implementada por inventory.Store).
type CatalogReader interface {
	ListProducts(filter inventory.ProductFilter) []entity.Product
}

// SupplierUseCase directorio de proveedores. ProductsSupplied se deriva del catálogo al leer.
type SupplierUseCase struct {
	mu        sync.RWMutex
	suppliers map[string]*entity.Supplier
	catalog   CatalogReader
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(catalog CatalogReader) *SupplierUseCase {
	return &SupplierUseCase{suppliers: make(map[string]*entity.Supplier), catalog: catalog}
}

// Create da de alta un proveedor. El nombre es único sin distinguir mayúsculas.
func (uc *SupplierUseCase) Create(in SupplierInput) (*SupplierView, error) {
	supplier := &entity.Supplier{
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Status:        in.Status,
	}
	if supplier.Status == "" {
		supplier.Status = entity.SupplierActive
	}
	if err := validateSupplier(supplier); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	if err := uc.checkNameLocked(supplier.Name, ""); err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	supplier.ID = uuid.New().String()
	supplier.CreatedAt = time.Now()
	uc.suppliers[supplier.ID] = supplier
	uc.mu.Unlock()

	return uc.view(supplier, uc.productCounts()), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*SupplierView, error) {
	uc.mu.RLock()
	s, ok := uc.suppliers[id]
	var cp entity.Supplier
	if ok {
		cp = *s
	}
	uc.mu.RUnlock()
	if !ok {
		return nil, domain.NewNotFoundError("proveedor", id)
	}
	return uc.view(&cp, uc.productCounts()), nil
}

// Update aplica una edición parcial. Revalida el resultado completo antes de guardarlo.
func (uc *SupplierUseCase) Update(id string, patch SupplierPatch) (*SupplierView, error) {
	uc.mu.Lock()
	current, ok := uc.suppliers[id]
	if !ok {
		uc.mu.Unlock()
		return nil, domain.NewNotFoundError("proveedor", id)
	}
	next := *current
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.ContactPerson != nil {
		next.ContactPerson = strings.TrimSpace(*patch.ContactPerson)
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Phone != nil {
		next.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Address != nil {
		next.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if err := validateSupplier(&next); err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	if err := uc.checkNameLocked(next.Name, id); err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	uc.suppliers[id] = &next
	uc.mu.Unlock()

	return uc.view(&next, uc.productCounts()), nil
}

// Delete quita un proveedor del directorio. Los productos que lo nombran no cambian.
func (uc *SupplierUseCase) Delete(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.suppliers[id]; !ok {
		return domain.NewNotFoundError("proveedor", id)
	}
	delete(uc.suppliers, id)
	return nil
}

// List lista proveedores por nombre. Query filtra por nombre, contacto o email sin distinguir mayúsculas.
func (uc *SupplierUseCase) List(filter SupplierFilter) []SupplierView {
	counts := uc.productCounts()
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(filter.Query))

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]SupplierView, 0, len(uc.suppliers))
	for _, s := range uc.suppliers {
		if q != "" &&
			!strings.Contains(fold.String(s.Name), q) &&
			!strings.Contains(fold.String(s.ContactPerson), q) &&
			!strings.Contains(fold.String(s.Email), q) {
			continue
		}
		out = append(out, *uc.view(s, counts))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func validateSupplier(s *entity.Supplier) error {
	if s.Name == "" {
		return domain.NewValidationError("name", "es requerido")
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return domain.NewValidationError("email", "formato inválido")
		}
	}
	if s.Status != entity.SupplierActive && s.Status != entity.SupplierInactive {
		return domain.NewValidationError("status", "debe ser active o inactive")
	}
	return nil
}

// checkNameLocked rechaza un nombre ya usado por otro proveedor. Requiere mu tomado.
func (uc *SupplierUseCase) checkNameLocked(name, selfID string) error {
	for id, s := range uc.suppliers {
		if id != selfID && strings.EqualFold(s.Name, name) {
			return &domain.ValidationError{Field: "name", Reason: "ya existe: " + name, Cause: domain.ErrDuplicate}
		}
	}
	return nil
}

// productCounts productos por referencia de proveedor (nombre o id, sin distinguir mayúsculas).
func (uc *SupplierUseCase) productCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range uc.catalog.ListProducts(inventory.ProductFilter{}) {
		if p.Supplier != "" {
			counts[strings.ToLower(p.Supplier)]++
		}
	}
	return counts
}

func (uc *SupplierUseCase) view(s *entity.Supplier, counts map[string]int) *SupplierView {
	n := counts[strings.ToLower(s.Name)]
	if !strings.EqualFold(s.Name, s.ID) {
		n += counts[strings.ToLower(s.ID)]
	}
	return &SupplierView{Supplier: *s, ProductsSupplied: n}
}
