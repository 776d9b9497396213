package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest entrada para crear un insumo.
type CreateStockItemRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=100"`
	Quantity decimal.Decimal `json:"quantity" validate:"decimal_gte0"`
	Unit     string          `json:"unit" validate:"required,min=1,max=10"`
}

// UpdateStockItemRequest edición directa de un insumo. Quantity, si viene, no puede ser negativa.
type UpdateStockItemRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Quantity *decimal.Decimal `json:"quantity" validate:"omitempty,decimal_gte0"`
	Unit     *string          `json:"unit" validate:"omitempty,min=1,max=10"`
}

// AdjustStockRequest suma (o resta, si es negativo) Delta a la cantidad disponible.
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// StockItemResponse salida de un insumo.
type StockItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockItemListResponse lista paginada de insumos.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// DeleteStockItemResponse resultado del borrado con cascada explícita sobre recetas.
type DeleteStockItemResponse struct {
	ID                 string `json:"id"`
	RecipeLinesRemoved int64  `json:"recipe_lines_removed"`
}
