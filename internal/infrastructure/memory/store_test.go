package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/memory"
)

const owner = "owner-1"

func newItem(id, name string, qty int64) *entity.StockItem {
	return &entity.StockItem{ID: id, OwnerID: owner, Name: name, Quantity: decimal.NewFromInt(qty), Unit: "g"}
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

func TestTxRunner_ErrorDescartaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)
	require.NoError(t, items.Create(ctx, newItem("a", "Harina", 100)))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		require.NoError(t, stockRepo.UpdateQuantity(ctx, owner, "a", decimal.NewFromInt(1)))
		// Dentro de la tx se ve el cambio.
		it, _ := stockRepo.GetByID(ctx, owner, "a")
		assert.True(t, decimal.NewFromInt(1).Equal(it.Quantity))
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, err := items.GetByID(ctx, owner, "a")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(it.Quantity), "rollback debe restaurar la cantidad")
}

func TestTxRunner_CommitPublica(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)
	require.NoError(t, items.Create(ctx, newItem("a", "Harina", 100)))

	err := memory.NewTxRunner(store).Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		return stockRepo.UpdateQuantity(ctx, owner, "a", decimal.NewFromInt(40))
	})
	require.NoError(t, err)

	it, _ := items.GetByID(ctx, owner, "a")
	assert.True(t, decimal.NewFromInt(40).Equal(it.Quantity))
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewTxRunner(memory.NewStore()).Run(ctx, func(
		repository.StockItemRepository, repository.ProductRepository, repository.TransactionRepository,
	) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// ─── Repositorios ────────────────────────────────────────────────────────────

func TestStockItemRepo_UnicoPorPropietario(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)

	require.NoError(t, items.Create(ctx, newItem("a", "Harina", 1)))
	assert.ErrorIs(t, items.Create(ctx, newItem("b", "Harina", 1)), domain.ErrDuplicateStockItem)

	otro := newItem("c", "Harina", 1)
	otro.OwnerID = "owner-2"
	assert.NoError(t, items.Create(ctx, otro), "otro propietario puede usar el mismo nombre")

	ajeno, err := items.GetByID(ctx, owner, "c")
	require.NoError(t, err)
	assert.Nil(t, ajeno)
}

func TestStockItemRepo_NuncaNegativo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)
	require.NoError(t, items.Create(ctx, newItem("a", "Harina", 1)))

	err := items.UpdateQuantity(ctx, owner, "a", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_ReemplazoYBorradoDeInsumo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)
	products := memory.NewProductRepository(store)

	require.NoError(t, items.Create(ctx, newItem("a", "Harina", 1)))
	require.NoError(t, items.Create(ctx, newItem("b", "Sal", 1)))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p", OwnerID: owner, Name: "Pan", Unit: "und"}))
	require.NoError(t, products.ReplaceRecipe(ctx, "p", []entity.RecipeLine{
		{ID: "l1", StockItemID: "b", QuantityRequired: decimal.NewFromInt(2)},
		{ID: "l2", StockItemID: "a", QuantityRequired: decimal.NewFromInt(3)},
	}))

	p, err := products.GetByID(ctx, owner, "p")
	require.NoError(t, err)
	require.Len(t, p.Recipe, 2)
	assert.Equal(t, "b", p.Recipe[0].StockItemID)
	assert.Equal(t, "Harina", p.Recipe[1].StockItemName)
	assert.Equal(t, 1, p.Recipe[1].Position)

	n, err := products.DeleteRecipeLinesByStockItem(ctx, "b")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	lines, err := products.ListRecipe(ctx, "p")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].StockItemID)
}

func TestProductRepo_ReemplazoRechazaInsumoAjeno(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	items := memory.NewStockItemRepository(store)
	products := memory.NewProductRepository(store)

	ajeno := newItem("x", "Harina", 1)
	ajeno.OwnerID = "owner-2"
	require.NoError(t, items.Create(ctx, ajeno))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p", OwnerID: owner, Name: "Pan", Unit: "und"}))

	err := products.ReplaceRecipe(ctx, "p", []entity.RecipeLine{{ID: "l", StockItemID: "x", QuantityRequired: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, domain.ErrCrossOwnerReference)
}

func TestTransactionRepo_OrdenDescendenteYFiltro(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	products := memory.NewProductRepository(store)
	txs := memory.NewTransactionRepository(store)

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", OwnerID: owner, Name: "Pan", Unit: "und"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", OwnerID: owner, Name: "Torta", Unit: "und"}))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, pid := range []string{"p1", "p2", "p1"} {
		require.NoError(t, txs.Create(ctx, &entity.SaleTransaction{
			ID: string(rune('a' + i)), OwnerID: owner, ProductID: pid,
			QuantitySold: decimal.NewFromInt(1), Date: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := txs.ListByOwner(ctx, owner, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "Pan", all[0].ProductName)

	soloPan, err := txs.ListByOwner(ctx, owner, "p1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, soloPan, 2)

	n, err := txs.DeleteByProduct(ctx, owner, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

// ─── Analítica ───────────────────────────────────────────────────────────────

func TestWeekStart_Lunes(t *testing.T) {
	domingo := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	lunes := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, lunes, memory.WeekStart(domingo))
	assert.Equal(t, lunes, memory.WeekStart(lunes))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), memory.WeekStart(domingo.Add(2*time.Hour)))
}

func TestAnalyticsRepo_AgrupaPorSemanaAscendente(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	products := memory.NewProductRepository(store)
	txs := memory.NewTransactionRepository(store)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", OwnerID: owner, Name: "Pan", Unit: "und"}))

	fechas := []time.Time{
		time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC), // semana del 11
		time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),  // semana del 4
		time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC),  // semana del 4
	}
	for i, f := range fechas {
		require.NoError(t, txs.Create(ctx, &entity.SaleTransaction{
			ID: string(rune('a' + i)), OwnerID: owner, ProductID: "p1",
			QuantitySold: decimal.NewFromInt(int64(i + 1)), Date: f,
		}))
	}

	weeks, err := memory.NewAnalyticsRepository(store).GetWeeklySales(ctx, owner, repository.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), weeks[0].WeekStart)
	assert.True(t, decimal.NewFromInt(5).Equal(weeks[0].TotalSales))
	assert.True(t, decimal.NewFromInt(1).Equal(weeks[1].TotalSales))

	desde := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	weeks, err = memory.NewAnalyticsRepository(store).GetWeeklySales(ctx, owner, repository.SalesFilter{From: &desde})
	require.NoError(t, err)
	assert.Len(t, weeks, 1)
}
