package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
)

func TestInsufficientStockError_EsErrInsufficientStock(t *testing.T) {
	err := fmt.Errorf("registrar venta: %w", &domain.InsufficientStockError{
		StockItemID:   "flour",
		StockItemName: "harina",
		Required:      decimal.NewFromInt(600),
		Available:     decimal.NewFromInt(400),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	var ise *domain.InsufficientStockError
	assert.True(t, errors.As(err, &ise))
	assert.Equal(t, "harina", ise.StockItemName)
	assert.Contains(t, err.Error(), "requerido 600, disponible 400")
}

func TestReversalFailedError_DesenvuelveAmbos(t *testing.T) {
	err := &domain.ReversalFailedError{TransactionID: "t-1", Err: domain.ErrNotFound}

	assert.ErrorIs(t, err, domain.ErrReversalFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "t-1")
}
