package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
)

func TestStockCreate_Validaciones(t *testing.T) {
	l := newLedger()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateStockItemRequest
	}{
		{"nombre vacío", dto.CreateStockItemRequest{Name: "  ", Quantity: dec("1"), Unit: "g"}},
		{"nombre largo", dto.CreateStockItemRequest{Name: strings.Repeat("x", 101), Quantity: dec("1"), Unit: "g"}},
		{"unidad vacía", dto.CreateStockItemRequest{Name: "sal", Quantity: dec("1"), Unit: ""}},
		{"unidad larga", dto.CreateStockItemRequest{Name: "sal", Quantity: dec("1"), Unit: "kilogramos!"}},
		{"cantidad negativa", dto.CreateStockItemRequest{Name: "sal", Quantity: dec("-0.01"), Unit: "g"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.stock.Create(ctx, ownerA, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := l.stock.Create(ctx, "", dto.CreateStockItemRequest{Name: "sal", Quantity: dec("1"), Unit: "g"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	it, err := l.stock.Create(ctx, ownerA, dto.CreateStockItemRequest{Name: "sal", Quantity: dec("0"), Unit: "g"})
	require.NoError(t, err)
	assertQty(t, "0", it.Quantity)
}

func TestStockAdjust_NoPermiteNegativo(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	it := l.item(t, ownerA, "azucar", "10", "g")

	out, err := l.stock.Adjust(ctx, ownerA, it.ID, dec("5.5"))
	require.NoError(t, err)
	assertQty(t, "15.5", out.Quantity)

	out, err = l.stock.Adjust(ctx, ownerA, it.ID, dec("-15.5"))
	require.NoError(t, err)
	assertQty(t, "0", out.Quantity)

	_, err = l.stock.Adjust(ctx, ownerA, it.ID, dec("-1"))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assertQty(t, "1", ise.Required)
	assertQty(t, "0", ise.Available)
	assertQty(t, "0", l.qty(t, ownerA, it.ID))

	_, err = l.stock.Adjust(ctx, ownerA, "no-existe", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockUpdate_RenombreYCantidad(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "harina", "10", "g")
	l.item(t, ownerA, "sal", "10", "g")

	nuevo := "harina integral"
	out, err := l.stock.Update(ctx, ownerA, a.ID, dto.UpdateStockItemRequest{Name: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "harina integral", out.Name)

	choque := "sal"
	_, err = l.stock.Update(ctx, ownerA, a.ID, dto.UpdateStockItemRequest{Name: &choque})
	assert.ErrorIs(t, err, domain.ErrDuplicateStockItem)

	neg := dec("-1")
	_, err = l.stock.Update(ctx, ownerA, a.ID, dto.UpdateStockItemRequest{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = l.stock.SetQuantity(ctx, ownerA, a.ID, dec("42"))
	require.NoError(t, err)
	assertQty(t, "42", out.Quantity)
	assert.Equal(t, "harina integral", out.Name)
}

func TestStockUpdate_RenombreSeVeEnReceta(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "harina", "10", "g")
	p := l.product(t, ownerA, "pan", line(a.ID, "1"))

	nuevo := "harina 000"
	_, err := l.stock.Update(ctx, ownerA, a.ID, dto.UpdateStockItemRequest{Name: &nuevo})
	require.NoError(t, err)

	recipe, err := l.catalog.GetRecipe(ctx, ownerA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "harina 000", recipe[0].StockItemName)
}

func TestStockDelete_CascadaExplicita(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "harina", "10", "g")
	b := l.item(t, ownerA, "sal", "10", "g")
	pan := l.product(t, ownerA, "pan", line(a.ID, "1"), line(b.ID, "1"))
	torta := l.product(t, ownerA, "torta", line(a.ID, "2"))

	res, err := l.stock.Delete(ctx, ownerA, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.RecipeLinesRemoved)

	_, err = l.stock.Get(ctx, ownerA, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	recipe, err := l.catalog.GetRecipe(ctx, ownerA, pan.ID)
	require.NoError(t, err)
	require.Len(t, recipe, 1)
	assert.Equal(t, b.ID, recipe[0].StockItemID)

	recipe, err = l.catalog.GetRecipe(ctx, ownerA, torta.ID)
	require.NoError(t, err)
	assert.Empty(t, recipe)

	_, err = l.stock.Delete(ctx, ownerB, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockList_OrdenPorNombreYPaginado(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	for _, n := range []string{"c", "a", "b"} {
		l.item(t, ownerA, n, "1", "g")
	}

	out, err := l.stock.List(ctx, ownerA, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "a", out.Items[0].Name)
	assert.Equal(t, "b", out.Items[1].Name)

	out, err = l.stock.List(ctx, ownerA, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "c", out.Items[0].Name)
}
