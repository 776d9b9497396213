package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// WeeklySalesResult suma de unidades vendidas en una semana (lunes 00:00 UTC).
type WeeklySalesResult struct {
	WeekStart  time.Time
	TotalSales decimal.Decimal
}

// SalesFilter acota la proyección semanal. Campos vacíos/nil = sin filtro.
type SalesFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
}

// AnalyticsRepository consultas de solo lectura sobre las ventas.
// No participa en los invariantes del ledger.
type AnalyticsRepository interface {
	// GetWeeklySales agrupa SUM(quantity_sold) por semana calendario, en orden ascendente.
	GetWeeklySales(ctx context.Context, ownerID string, filter SalesFilter) ([]WeeklySalesResult, error)
}
