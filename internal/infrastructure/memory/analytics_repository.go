package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo proyección semanal de ventas en memoria.
type AnalyticsRepo struct {
	h handle
}

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{h: handle{store: store}}
}

// GetWeeklySales agrupa por lunes 00:00 UTC, igual que date_trunc('week', ...) en PostgreSQL.
func (r *AnalyticsRepo) GetWeeklySales(_ context.Context, ownerID string, filter repository.SalesFilter) ([]repository.WeeklySalesResult, error) {
	totals := make(map[time.Time]decimal.Decimal)
	err := r.h.read(func(s *state) error {
		for _, t := range s.transactions {
			if t.OwnerID != ownerID {
				continue
			}
			if filter.ProductID != "" && t.ProductID != filter.ProductID {
				continue
			}
			if filter.From != nil && t.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !t.Date.Before(*filter.To) {
				continue
			}
			w := WeekStart(t.Date)
			totals[w] = totals[w].Add(t.QuantitySold)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.WeeklySalesResult, 0, len(totals))
	for w, total := range totals {
		out = append(out, repository.WeeklySalesResult{WeekStart: w, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out, nil
}

// WeekStart devuelve el lunes 00:00 UTC de la semana ISO de t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // lunes = 0
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -offset)
}
