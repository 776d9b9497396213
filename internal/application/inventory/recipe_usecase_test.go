package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
)

func TestCreateProduct_RecetaEnOrdenDeInsercion(t *testing.T) {
	l := newLedger()
	c := l.item(t, ownerA, "c", "1", "g")
	a := l.item(t, ownerA, "a", "1", "g")
	b := l.item(t, ownerA, "b", "1", "g")

	p := l.product(t, ownerA, "mezcla", line(c.ID, "3"), line(a.ID, "1"), line(b.ID, "2"))

	got, err := l.catalog.GetRecipe(context.Background(), ownerA, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, []string{got[0].StockItemID, got[1].StockItemID, got[2].StockItemID})
	assert.Equal(t, "c", got[0].StockItemName)
}

func TestCreateProduct_LineasInvalidas(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "a", "1", "g")

	cases := map[string][]dto.RecipeLineRequest{
		"cantidad cero":     {line(a.ID, "0")},
		"cantidad negativa": {line(a.ID, "-2")},
		"insumo repetido":   {line(a.ID, "1"), line(a.ID, "2")},
		"sin insumo":        {{QuantityRequired: dec("1")}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := l.catalog.CreateProduct(ctx, ownerA, dto.CreateProductRequest{Name: "p-" + name, Unit: "und", Ingredients: lines})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := l.catalog.CreateProduct(ctx, ownerA, dto.CreateProductRequest{
		Name: "fantasma", Unit: "und", Ingredients: []dto.RecipeLineRequest{line("no-existe", "1")},
	})
	assert.ErrorIs(t, err, domain.ErrCrossOwnerReference)
}

func TestReplaceRecipe_ReemplazoTotal(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "a", "1", "g")
	b := l.item(t, ownerA, "b", "1", "g")
	p := l.product(t, ownerA, "p", line(a.ID, "1"), line(b.ID, "1"))

	out, err := l.catalog.ReplaceRecipe(ctx, ownerA, p.ID, []dto.RecipeLineRequest{line(b.ID, "7")})
	require.NoError(t, err)
	require.Len(t, out.Ingredients, 1)

	got, err := l.catalog.GetRecipe(ctx, ownerA, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].StockItemID)
	assertQty(t, "7", got[0].QuantityRequired)

	_, err = l.catalog.ReplaceRecipe(ctx, ownerA, p.ID, nil)
	require.NoError(t, err)
	got, err = l.catalog.GetRecipe(ctx, ownerA, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = l.catalog.ReplaceRecipe(ctx, ownerB, p.ID, []dto.RecipeLineRequest{line(b.ID, "1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProduct_RecetaSoloSiVienenLineas(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "a", "1", "g")
	b := l.item(t, ownerA, "b", "1", "g")
	p := l.product(t, ownerA, "pan", line(a.ID, "1"))
	l.product(t, ownerA, "torta")

	nombre := "pan blanco"
	out, err := l.catalog.UpdateProduct(ctx, ownerA, p.ID, dto.UpdateProductRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "pan blanco", out.Name)
	require.Len(t, out.Ingredients, 1)
	assert.Equal(t, a.ID, out.Ingredients[0].StockItemID)

	out, err = l.catalog.UpdateProduct(ctx, ownerA, p.ID, dto.UpdateProductRequest{Ingredients: []dto.RecipeLineRequest{line(b.ID, "2")}})
	require.NoError(t, err)
	require.Len(t, out.Ingredients, 1)
	assert.Equal(t, b.ID, out.Ingredients[0].StockItemID)

	choque := "torta"
	_, err = l.catalog.UpdateProduct(ctx, ownerA, p.ID, dto.UpdateProductRequest{Name: &choque})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestDeleteProduct_BorraVentasSinReponer(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "a", "10", "g")
	p := l.product(t, ownerA, "pan", line(a.ID, "1"))
	sale, err := l.engine.RecordSale(ctx, ownerA, p.ID, dec("4"))
	require.NoError(t, err)

	require.NoError(t, l.catalog.DeleteProduct(ctx, ownerA, p.ID))

	_, err = l.catalog.GetProduct(ctx, ownerA, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = l.engine.GetTransaction(ctx, ownerA, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assertQty(t, "6", l.qty(t, ownerA, a.ID))

	assert.ErrorIs(t, l.catalog.DeleteProduct(ctx, ownerA, p.ID), domain.ErrNotFound)
}

func TestListTransactions_FiltroPorProducto(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	a := l.item(t, ownerA, "a", "100", "g")
	pan := l.product(t, ownerA, "pan", line(a.ID, "1"))
	torta := l.product(t, ownerA, "torta", line(a.ID, "1"))
	for _, pid := range []string{pan.ID, torta.ID, pan.ID} {
		_, err := l.engine.RecordSale(ctx, ownerA, pid, dec("1"))
		require.NoError(t, err)
	}

	out, err := l.engine.ListTransactions(ctx, ownerA, pan.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	for _, it := range out.Items {
		assert.Equal(t, "pan", it.ProductName)
		assert.NotEmpty(t, it.FormattedDate)
	}

	out, err = l.engine.ListTransactions(ctx, ownerB, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}
