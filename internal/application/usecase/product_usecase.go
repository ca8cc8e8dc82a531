package usecase

import (
	"context"

	"github.com/jhoicas/inventory-dashboard/internal/application/dto"
	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
)

// ProductUseCase casos de uso CRUD para productos sobre el catálogo del Store.
// El stock no se edita aquí: solo cambia vía movimientos del ledger.
type ProductUseCase struct {
	store *inventory.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store *inventory.Store) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.store.CreateProduct(ctx, inventory.ProductDraft{
		Name:         in.Name,
		SKU:          in.SKU,
		Category:     in.Category,
		Price:        in.Price,
		CostPrice:    in.CostPrice,
		ReorderPoint: in.ReorderPoint,
		Supplier:     in.Supplier,
		ImageURL:     in.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(*product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.store.GetProduct(id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(*product)
	return &out, nil
}

// Update actualiza los campos enviados y revalida el producto completo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.store.UpdateProduct(ctx, id, inventory.ProductPatch{
		Name:         in.Name,
		SKU:          in.SKU,
		Category:     in.Category,
		Price:        in.Price,
		CostPrice:    in.CostPrice,
		ReorderPoint: in.ReorderPoint,
		Supplier:     in.Supplier,
		ImageURL:     in.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(*product)
	return &out, nil
}

// List lista productos filtrando por categoría y texto libre (nombre o SKU).
func (uc *ProductUseCase) List(category, query string) *dto.ProductListResponse {
	out := dto.NewProductListResponse(uc.store.ListProducts(inventory.ProductFilter{
		Category: category,
		Query:    query,
	}))
	return &out
}

// Delete elimina un producto por ID. Su historial de movimientos se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.DeleteProduct(ctx, id)
}
