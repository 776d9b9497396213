package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-recetas/pkg/validator"
)

type linea struct {
	StockItemID string          `json:"stock_item_id" validate:"required"`
	Cantidad    decimal.Decimal `json:"quantity_required" validate:"decimal_gt0"`
}

type pedido struct {
	Nombre   string           `json:"name" validate:"required,max=10"`
	Cantidad *decimal.Decimal `json:"quantity" validate:"omitempty,decimal_gte0"`
	Lineas   []linea          `json:"ingredients" validate:"dive"`
}

func TestValidateStruct_Valido(t *testing.T) {
	q := decimal.NewFromInt(3)
	errs := validator.ValidateStruct(pedido{
		Nombre:   "pan",
		Cantidad: &q,
		Lineas:   []linea{{StockItemID: "a", Cantidad: decimal.RequireFromString("0.5")}},
	})
	assert.Empty(t, errs)
}

func TestValidateStruct_DecimalesNoPositivos(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	errs := validator.ValidateStruct(pedido{
		Nombre:   "pan",
		Cantidad: &neg,
		Lineas:   []linea{{StockItemID: "a", Cantidad: decimal.Zero}},
	})
	require.Len(t, errs, 2)

	tags := []string{errs[0].Tag, errs[1].Tag}
	assert.ElementsMatch(t, []string{"decimal_gte0", "decimal_gt0"}, tags)
	assert.Contains(t, validator.Message(errs), "quantity_required")
}

func TestValidateStruct_Requeridos(t *testing.T) {
	errs := validator.ValidateStruct(pedido{})
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "pedido.name", errs[0].FailedField)
}

func TestValidateStruct_DecimalMuyPequenoEsPositivo(t *testing.T) {
	// 10^-400 no cabe en un float64 (se vuelve 0); la comparación debe ser exacta.
	tiny := decimal.New(1, -400)
	cero := decimal.Zero
	errs := validator.ValidateStruct(pedido{
		Nombre:   "pan",
		Cantidad: &cero,
		Lineas:   []linea{{StockItemID: "a", Cantidad: tiny}},
	})
	assert.Empty(t, errs)

	errs = validator.ValidateStruct(linea{StockItemID: "a", Cantidad: decimal.New(-1, -400)})
	require.Len(t, errs, 1)
	assert.Equal(t, "decimal_gt0", errs[0].Tag)
}
