package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

func TestNormalizeName_NFCyEspacios(t *testing.T) {
	compuesto := "Caf\u00e9"
	descompuesto := "  Cafe\u0301 "

	assert.Equal(t, compuesto, entity.NormalizeName(descompuesto))
	assert.Equal(t, entity.NormalizeName(compuesto), entity.NormalizeName(descompuesto))
}

func TestProduct_StockItemIDs_OrdenSinRepetidos(t *testing.T) {
	p := entity.Product{Recipe: []entity.RecipeLine{
		{StockItemID: "harina", QuantityRequired: decimal.NewFromInt(200)},
		{StockItemID: "sal", QuantityRequired: decimal.NewFromInt(5)},
		{StockItemID: "harina", QuantityRequired: decimal.NewFromInt(10)},
	}}

	assert.Equal(t, []string{"harina", "sal"}, p.StockItemIDs())
}
