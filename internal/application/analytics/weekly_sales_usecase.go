// Package analytics contiene las proyecciones de solo lectura sobre las ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

// weekLayout formato de la fecha de inicio de semana en la respuesta.
const weekLayout = "2006-01-02"

// WeeklySalesUseCase suma las unidades vendidas por semana calendario (lunes a domingo).
type WeeklySalesUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewWeeklySalesUseCase construye el caso de uso.
func NewWeeklySalesUseCase(analyticsRepo repository.AnalyticsRepository) *WeeklySalesUseCase {
	return &WeeklySalesUseCase{analyticsRepo: analyticsRepo}
}

// WeeklySales devuelve la serie semanal del propietario en orden ascendente.
// productID vacío = todos los productos; from/to opcionales acotan [from, to).
func (uc *WeeklySalesUseCase) WeeklySales(
	ctx context.Context,
	ownerID, productID string,
	from, to *time.Time,
) (*dto.WeeklySalesResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, fmt.Errorf("from debe ser anterior a to: %w", domain.ErrInvalidInput)
	}

	rows, err := uc.analyticsRepo.GetWeeklySales(ctx, ownerID, repository.SalesFilter{
		ProductID: productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, fmt.Errorf("weekly sales: %w", err)
	}

	out := &dto.WeeklySalesResponse{
		ProductID:   productID,
		WeeklySales: make([]dto.WeeklySalesDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.WeeklySales = append(out.WeeklySales, dto.WeeklySalesDTO{
			WeekStart:  r.WeekStart.UTC().Format(weekLayout),
			TotalSales: r.TotalSales,
		})
	}
	return out, nil
}
