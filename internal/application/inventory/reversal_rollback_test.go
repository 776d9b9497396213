package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/application/inventory"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/memory"
)

var errEscritura = errors.New("fallo de escritura")

// stockQueFalla delega en el repo real y falla en la llamada número failOn a UpdateQuantity.
type stockQueFalla struct {
	repository.StockItemRepository
	calls  *int
	failOn int
}

func (s stockQueFalla) UpdateQuantity(ctx context.Context, ownerID, id string, q decimal.Decimal) error {
	*s.calls++
	if *s.calls == s.failOn {
		return errEscritura
	}
	return s.StockItemRepository.UpdateQuantity(ctx, ownerID, id, q)
}

// runnerQueFalla envuelve el TxRunner en memoria inyectando stockQueFalla.
type runnerQueFalla struct {
	inner  *memory.TxRunner
	calls  int
	failOn int
}

func (r *runnerQueFalla) Run(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.inner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		return fn(stockQueFalla{StockItemRepository: stockRepo, calls: &r.calls, failOn: r.failOn}, productRepo, txRepo)
	})
}

func TestReverseThenRemove_FalloAMitadNoPersisteNada(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	l := ledger{
		stock:   inventory.NewStockLedgerUseCase(runner, memory.NewStockItemRepository(store), nil),
		catalog: inventory.NewRecipeCatalogUseCase(runner, memory.NewProductRepository(store), nil),
		engine:  inventory.NewTransactionEngine(runner, memory.NewTransactionRepository(store), nil),
	}
	ctx := context.Background()

	a := l.item(t, ownerA, "harina", "100", "g")
	b := l.item(t, ownerA, "azucar", "100", "g")
	p := l.product(t, ownerA, "torta", line(a.ID, "10"), line(b.ID, "5"))

	sale, err := l.engine.RecordSale(ctx, ownerA, p.ID, dec("2"))
	require.NoError(t, err)
	assertQty(t, "80", l.qty(t, ownerA, a.ID))
	assertQty(t, "90", l.qty(t, ownerA, b.ID))

	// El primer insumo se repone y la segunda escritura falla.
	failing := &runnerQueFalla{inner: runner, failOn: 2}
	engine := inventory.NewTransactionEngine(failing, memory.NewTransactionRepository(store), nil)

	_, err = engine.ReverseThenRemove(ctx, ownerA, sale.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReversalFailed)
	assert.ErrorIs(t, err, errEscritura)
	assert.Equal(t, 2, failing.calls)

	// Nada quedó escrito: ni la reposición del primer insumo ni el borrado de la venta.
	assertQty(t, "80", l.qty(t, ownerA, a.ID))
	assertQty(t, "90", l.qty(t, ownerA, b.ID))
	got, err := l.engine.GetTransaction(ctx, ownerA, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)

	// Sin el fallo, la misma venta se revierte normalmente.
	_, err = l.engine.ReverseThenRemove(ctx, ownerA, sale.ID)
	require.NoError(t, err)
	assertQty(t, "90", l.qty(t, ownerA, a.ID))
	assertQty(t, "95", l.qty(t, ownerA, b.ID))
}
