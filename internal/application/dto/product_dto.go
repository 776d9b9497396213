package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineRequest una línea de receta: insumo y cantidad requerida por unidad de producto.
type RecipeLineRequest struct {
	StockItemID      string          `json:"stock_item" validate:"required"`
	QuantityRequired decimal.Decimal `json:"quantity_required" validate:"decimal_gt0"`
}

// CreateProductRequest entrada para crear un producto con su receta.
type CreateProductRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=100"`
	Unit        string              `json:"unit" validate:"required,min=1,max=10"`
	Ingredients []RecipeLineRequest `json:"ingredients" validate:"dive"`
}

// UpdateProductRequest actualización parcial. Si Ingredients trae líneas, la receta se reemplaza completa.
type UpdateProductRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Unit        *string             `json:"unit" validate:"omitempty,min=1,max=10"`
	Ingredients []RecipeLineRequest `json:"ingredients" validate:"dive"`
}

// ReplaceRecipeRequest reemplazo total de la receta.
type ReplaceRecipeRequest struct {
	Ingredients []RecipeLineRequest `json:"ingredients" validate:"dive"`
}

// RecipeLineResponse salida de una línea de receta.
type RecipeLineResponse struct {
	StockItemID      string          `json:"stock_item"`
	StockItemName    string          `json:"stock_item_name"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
}

// ProductResponse salida de un producto con su receta en orden de inserción.
type ProductResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Unit        string               `json:"unit"`
	Ingredients []RecipeLineResponse `json:"ingredients"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
