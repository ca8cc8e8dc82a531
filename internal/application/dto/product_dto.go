package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-dashboard/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	SKU          string           `json:"sku" validate:"required,min=1,max=100"`
	Category     string           `json:"category" validate:"max=100"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	CostPrice    *decimal.Decimal `json:"cost_price" validate:"required"`
	ReorderPoint *int64           `json:"reorder_point" validate:"required,min=0"`
	Supplier     string           `json:"supplier" validate:"max=200"`
	ImageURL     string           `json:"image_url" validate:"omitempty,url"`
}

// UpdateProductRequest edición parcial de un producto (el stock no se edita aquí).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Category     *string          `json:"category" validate:"omitempty,max=100"`
	Price        *decimal.Decimal `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	ReorderPoint *int64           `json:"reorder_point" validate:"omitempty,min=0"`
	Supplier     *string          `json:"supplier" validate:"omitempty,max=200"`
	ImageURL     *string          `json:"image_url" validate:"omitempty,url"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	ReorderPoint int64           `json:"reorder_point"`
	Supplier     string          `json:"supplier"`
	ImageURL     string          `json:"image_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse mapea la entidad a la respuesta HTTP.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Price:        p.Price,
		CostPrice:    p.CostPrice,
		ReorderPoint: p.ReorderPoint,
		Supplier:     p.Supplier,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProductListResponse mapea una lista de productos.
func NewProductListResponse(list []entity.Product) ProductListResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, NewProductResponse(p))
	}
	return ProductListResponse{Items: items, Page: PageResponse{Total: len(items)}}
}
