package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre las ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetWeeklySales agrupa SUM(quantity_sold) por semana ISO (lunes, UTC) en orden ascendente.
// Filtros opcionales: producto y rango [from, to).
func (r *AnalyticsRepo) GetWeeklySales(ctx context.Context, ownerID string, filter repository.SalesFilter) ([]repository.WeeklySalesResult, error) {
	if !validID(ownerID) || (filter.ProductID != "" && !validID(filter.ProductID)) {
		return []repository.WeeklySalesResult{}, nil
	}
	const query = `
	SELECT
	    date_trunc('week', t.date AT TIME ZONE 'UTC') AS week_start,
	    SUM(t.quantity_sold)                           AS total_sales
	FROM transactions t
	WHERE t.owner_id = $1
	  AND ($2 = '' OR t.product_id::text = $2)
	  AND ($3::timestamptz IS NULL OR t.date >= $3)
	  AND ($4::timestamptz IS NULL OR t.date <  $4)
	GROUP BY week_start
	ORDER BY week_start`

	rows, err := r.q.Query(ctx, query, ownerID, filter.ProductID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("weekly sales: %w", err)
	}
	defer rows.Close()

	out := make([]repository.WeeklySalesResult, 0)
	for rows.Next() {
		var w repository.WeeklySalesResult
		if err := rows.Scan(&w.WeekStart, &w.TotalSales); err != nil {
			return nil, fmt.Errorf("scan weekly sales: %w", err)
		}
		w.WeekStart = w.WeekStart.UTC()
		out = append(out, w)
	}
	return out, rows.Err()
}
