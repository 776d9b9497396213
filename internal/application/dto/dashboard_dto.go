package dto

import "github.com/shopspring/decimal"

// WeeklySalesDTO ventas de una semana (fecha del lunes, YYYY-MM-DD).
type WeeklySalesDTO struct {
	WeekStart  string          `json:"week_start"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// WeeklySalesResponse respuesta de GET /api/dashboard/weekly-sales.
type WeeklySalesResponse struct {
	ProductID   string           `json:"product_id,omitempty"`
	WeeklySales []WeeklySalesDTO `json:"weekly_sales"`
}
