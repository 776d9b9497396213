package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/application/analytics"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/memory"
)

const owner = "owner-1"

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	products := memory.NewProductRepository(store)
	txs := memory.NewTransactionRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "pan", OwnerID: owner, Name: "Pan", Unit: "und"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "torta", OwnerID: owner, Name: "Torta", Unit: "und"}))

	ventas := []struct {
		id, product string
		qty         int64
		date        time.Time
	}{
		{"t1", "pan", 2, time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)},
		{"t2", "torta", 1, time.Date(2024, 5, 8, 8, 0, 0, 0, time.UTC)},
		{"t3", "pan", 4, time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC)},
	}
	for _, v := range ventas {
		require.NoError(t, txs.Create(ctx, &entity.SaleTransaction{
			ID: v.id, OwnerID: owner, ProductID: v.product, QuantitySold: decimal.NewFromInt(v.qty), Date: v.date,
		}))
	}
	return store
}

func TestWeeklySales_TodasLasVentas(t *testing.T) {
	uc := analytics.NewWeeklySalesUseCase(memory.NewAnalyticsRepository(seed(t)))

	out, err := uc.WeeklySales(context.Background(), owner, "", nil, nil)
	require.NoError(t, err)
	require.Len(t, out.WeeklySales, 2)
	assert.Equal(t, "2024-05-06", out.WeeklySales[0].WeekStart)
	assert.True(t, decimal.NewFromInt(3).Equal(out.WeeklySales[0].TotalSales))
	assert.Equal(t, "2024-05-13", out.WeeklySales[1].WeekStart)
}

func TestWeeklySales_FiltroProducto(t *testing.T) {
	uc := analytics.NewWeeklySalesUseCase(memory.NewAnalyticsRepository(seed(t)))

	out, err := uc.WeeklySales(context.Background(), owner, "torta", nil, nil)
	require.NoError(t, err)
	require.Len(t, out.WeeklySales, 1)
	assert.Equal(t, "torta", out.ProductID)
	assert.True(t, decimal.NewFromInt(1).Equal(out.WeeklySales[0].TotalSales))
}

func TestWeeklySales_Validaciones(t *testing.T) {
	uc := analytics.NewWeeklySalesUseCase(memory.NewAnalyticsRepository(seed(t)))
	ctx := context.Background()

	_, err := uc.WeeklySales(ctx, "", "", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = uc.WeeklySales(ctx, owner, "", &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.WeeklySales(ctx, "otro", "", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out.WeeklySales)
}
