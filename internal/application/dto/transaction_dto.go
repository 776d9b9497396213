package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest entrada para registrar una venta.
type RecordSaleRequest struct {
	ProductID    string          `json:"product" validate:"required"`
	QuantitySold decimal.Decimal `json:"quantity_sold" validate:"decimal_gt0"`
}

// StockChangeDTO efecto de una venta o reversión sobre un insumo.
type StockChangeDTO struct {
	StockItemID   string          `json:"stock_item"`
	StockItemName string          `json:"stock_item_name"`
	Delta         decimal.Decimal `json:"delta"`
	Quantity      decimal.Decimal `json:"quantity"` // cantidad resultante
}

// TransactionResponse salida de una venta.
type TransactionResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product"`
	ProductName   string           `json:"product_name"`
	QuantitySold  decimal.Decimal  `json:"quantity_sold"`
	Date          time.Time        `json:"date"`
	FormattedDate string           `json:"formatted_date"`
	StockChanges  []StockChangeDTO `json:"stock_changes,omitempty"`
}

// TransactionListResponse lista paginada de ventas (más recientes primero).
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReversalResponse resultado de borrar una venta: qué se repuso.
type ReversalResponse struct {
	TransactionID string           `json:"transaction_id"`
	Restocked     []StockChangeDTO `json:"restocked"`
}

// InsufficientStockDetails detalle en el cuerpo de error 409 INSUFFICIENT_STOCK.
type InsufficientStockDetails struct {
	StockItemID   string          `json:"stock_item"`
	StockItemName string          `json:"stock_item_name"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
}
