package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func receta() []entity.RecipeLine {
	return []entity.RecipeLine{
		{StockItemID: "harina", StockItemName: "harina", Position: 0, QuantityRequired: d("200")},
		{StockItemID: "sal", StockItemName: "sal", Position: 1, QuantityRequired: d("2.5")},
	}
}

func TestSaleRequirements_MultiplicaPorCantidadVendida(t *testing.T) {
	reqs := inventory.SaleRequirements(receta(), d("3"))

	require.Len(t, reqs, 2)
	assert.Equal(t, "harina", reqs[0].StockItemID)
	assert.True(t, reqs[0].Amount.Equal(d("600")))
	assert.True(t, reqs[1].Amount.Equal(d("7.5")))
}

func TestReversalRestock_ReponeLaMitad(t *testing.T) {
	reqs := inventory.ReversalRestock(receta(), d("3"))

	require.Len(t, reqs, 2)
	assert.True(t, reqs[0].Amount.Equal(d("300")), "600/2")
	assert.True(t, reqs[1].Amount.Equal(d("3.75")), "7.5/2")
}

func TestCheckAvailability_Alcanza(t *testing.T) {
	reqs := inventory.SaleRequirements(receta(), d("3"))
	totals, err := inventory.CheckAvailability(reqs, map[string]decimal.Decimal{
		"harina": d("600"), // exactamente lo requerido
		"sal":    d("100"),
	})

	require.NoError(t, err)
	assert.True(t, totals["harina"].Equal(d("600")))
	assert.True(t, totals["sal"].Equal(d("7.5")))
}

func TestCheckAvailability_PrimeraLineaQueFalla(t *testing.T) {
	reqs := inventory.SaleRequirements(receta(), d("3"))
	_, err := inventory.CheckAvailability(reqs, map[string]decimal.Decimal{
		"harina": d("400"),
		"sal":    d("0"),
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "harina", ise.StockItemID)
	assert.True(t, ise.Required.Equal(d("600")))
	assert.True(t, ise.Available.Equal(d("400")))
}

func TestCheckAvailability_AcumulaLineasDelMismoInsumo(t *testing.T) {
	lines := []entity.RecipeLine{
		{StockItemID: "harina", StockItemName: "harina", QuantityRequired: d("1")},
		{StockItemID: "harina", StockItemName: "harina", QuantityRequired: d("1")},
	}
	_, err := inventory.CheckAvailability(inventory.SaleRequirements(lines, d("1")), map[string]decimal.Decimal{
		"harina": d("1.5"),
	})

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.True(t, ise.Required.Equal(d("2")))
}

func TestCheckAvailability_InsumoDesconocido(t *testing.T) {
	reqs := inventory.SaleRequirements(receta(), d("1"))
	_, err := inventory.CheckAvailability(reqs, map[string]decimal.Decimal{"harina": d("1000")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTotals_OrdenDePrimeraAparicion(t *testing.T) {
	order, totals := inventory.Totals([]inventory.Requirement{
		{StockItemID: "b", Amount: d("1")},
		{StockItemID: "a", Amount: d("2")},
		{StockItemID: "b", Amount: d("3")},
	})

	assert.Equal(t, []string{"b", "a"}, order)
	assert.True(t, totals["b"].Equal(d("4")))
}

func TestReversalRestockRatio_EsLaMitad(t *testing.T) {
	assert.True(t, inventory.ReversalRestockRatio().Equal(d("0.5")))

	// El valor devuelto es una copia: modificarla no cambia la regla.
	r := inventory.ReversalRestockRatio()
	r = r.Add(d("1"))
	assert.True(t, r.Equal(d("1.5")))
	assert.True(t, inventory.ReversalRestockRatio().Equal(d("0.5")))

	reqs := inventory.ReversalRestock(receta(), d("2"))
	assert.True(t, reqs[0].Amount.Equal(d("200")))
}
