package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/inventory-dashboard/internal/domain"
	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// ProductDraft datos para crear un producto. Los campos numéricos son punteros para
// distinguir "ausente" de cero.
type ProductDraft struct {
	Name         string
	SKU          string
	Category     string
	Price        *decimal.Decimal
	CostPrice    *decimal.Decimal
	ReorderPoint *int64
	Supplier     string
	ImageURL     string
}

// ProductPatch edición parcial: solo se aplican los campos no nil.
type ProductPatch struct {
	Name         *string
	SKU          *string
	Category     *string
	Price        *decimal.Decimal
	CostPrice    *decimal.Decimal
	ReorderPoint *int64
	Supplier     *string
	ImageURL     *string
}

// ProductFilter filtro de listado. Category compara sin distinguir mayúsculas;
// Query busca como subcadena en nombre o SKU.
type ProductFilter struct {
	Category string
	Query    string
}

// CreateProduct da de alta un producto con id y fecha de creación nuevos.
func (s *Store) CreateProduct(ctx context.Context, in ProductDraft) (*entity.Product, error) {
	switch {
	case in.Price == nil:
		return nil, domain.NewValidationError("price", "es requerido")
	case in.CostPrice == nil:
		return nil, domain.NewValidationError("cost_price", "es requerido")
	case in.ReorderPoint == nil:
		return nil, domain.NewValidationError("reorder_point", "es requerido")
	}
	now := s.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		SKU:          strings.TrimSpace(in.SKU),
		Category:     strings.TrimSpace(in.Category),
		Price:        *in.Price,
		CostPrice:    *in.CostPrice,
		ReorderPoint: *in.ReorderPoint,
		Supplier:     strings.TrimSpace(in.Supplier),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.skus[skuKey(product.SKU)]; taken {
		return nil, duplicateSKU(product.SKU)
	}
	if s.productRepo != nil {
		if err := s.productRepo.Create(ctx, product); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, duplicateSKU(product.SKU)
			}
			return nil, storageErr("create product", err)
		}
	}
	s.products[product.ID] = product
	s.skus[skuKey(product.SKU)] = product.ID

	s.log.Debug().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	out := *product
	return &out, nil
}

// UpdateProduct fusiona los campos del patch y revalida el registro resultante.
func (s *Store) UpdateProduct(ctx context.Context, id string, in ProductPatch) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("producto", id)
	}
	merged := *current
	if in.Name != nil {
		merged.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		merged.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Category != nil {
		merged.Category = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.CostPrice != nil {
		merged.CostPrice = *in.CostPrice
	}
	if in.ReorderPoint != nil {
		merged.ReorderPoint = *in.ReorderPoint
	}
	if in.Supplier != nil {
		merged.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if in.ImageURL != nil {
		merged.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if err := validateProduct(&merged); err != nil {
		return nil, err
	}
	if owner, taken := s.skus[skuKey(merged.SKU)]; taken && owner != id {
		return nil, duplicateSKU(merged.SKU)
	}
	merged.UpdatedAt = s.now()

	if s.productRepo != nil {
		if err := s.productRepo.Update(ctx, &merged); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, duplicateSKU(merged.SKU)
			}
			return nil, storageErr("update product", err)
		}
	}
	delete(s.skus, skuKey(current.SKU))
	s.skus[skuKey(merged.SKU)] = id
	*current = merged

	out := merged
	return &out, nil
}

// DeleteProduct elimina el producto del catálogo. Sus movimientos quedan en el ledger.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[id]
	if !ok {
		return domain.NewNotFoundError("producto", id)
	}
	if s.productRepo != nil {
		if err := s.productRepo.Delete(ctx, id); err != nil {
			return storageErr("delete product", err)
		}
	}
	delete(s.skus, skuKey(current.SKU))
	delete(s.products, id)

	s.log.Debug().Str("product_id", id).Int("history", len(s.byProduct[id])).Msg("producto eliminado; historial conservado")
	return nil
}

// GetProduct obtiene un producto por ID.
func (s *Store) GetProduct(id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("producto", id)
	}
	out := *p
	return &out, nil
}

// ListProducts lista el catálogo filtrado, por fecha de creación y luego SKU.
func (s *Store) ListProducts(filter ProductFilter) []entity.Product {
	// Un Caser no se comparte entre goroutines.
	fold := cases.Fold()
	category := fold.String(strings.TrimSpace(filter.Category))
	query := fold.String(strings.TrimSpace(filter.Query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && fold.String(p.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(fold.String(p.Name), query) &&
			!strings.Contains(fold.String(p.SKU), query) {
			continue
		}
		out = append(out, *p)
	}
	sortProducts(out)
	return out
}

// validateProduct restricciones de campo del registro completo.
func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return domain.NewValidationError("name", "es requerido")
	case p.SKU == "":
		return domain.NewValidationError("sku", "es requerido")
	case p.Price.IsNegative():
		return domain.NewValidationError("price", "no puede ser negativo")
	case p.CostPrice.IsNegative():
		return domain.NewValidationError("cost_price", "no puede ser negativo")
	case !moneyFits(p.Price):
		return domain.NewValidationError("price", "máximo 2 decimales y menos de 1e12")
	case !moneyFits(p.CostPrice):
		return domain.NewValidationError("cost_price", "máximo 2 decimales y menos de 1e12")
	case p.ReorderPoint < 0:
		return domain.NewValidationError("reorder_point", "no puede ser negativo")
	}
	return nil
}

// maxMoney límite exclusivo de NUMERIC(14,2).
var maxMoney = decimal.New(1, 12)

// moneyFits indica si el importe se guarda sin redondeo en NUMERIC(14,2).
func moneyFits(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}

func duplicateSKU(sku string) error {
	return &domain.ValidationError{Field: "sku", Reason: "ya existe: " + sku, Cause: domain.ErrDuplicate}
}

// skuKey normaliza el SKU para la unicidad (sin espacios, sin distinguir mayúsculas).
func skuKey(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
