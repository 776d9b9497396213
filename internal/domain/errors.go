package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los handlers los traducen a respuestas HTTP con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	ErrDuplicateStockItem  = errors.New("el insumo ya existe para este propietario")
	ErrDuplicateProduct    = errors.New("el producto ya existe para este propietario")
	ErrCrossOwnerReference = errors.New("la receta referencia un insumo de otro propietario")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrReversalFailed      = errors.New("no se pudo revertir la transacción")
)

// InsufficientStockError detalla el primer insumo de la receta que no alcanza.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	StockItemID   string
	StockItemName string
	Required      decimal.Decimal
	Available     decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para '%s': requerido %s, disponible %s",
		e.StockItemName, e.Required.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ReversalFailedError envuelve la causa por la que no se pudo reponer stock al borrar una transacción.
// Se desenvuelve tanto a ErrReversalFailed como a la causa original.
type ReversalFailedError struct {
	TransactionID string
	Err           error
}

func (e *ReversalFailedError) Error() string {
	return fmt.Sprintf("revertir transacción %s: %v", e.TransactionID, e.Err)
}

func (e *ReversalFailedError) Unwrap() []error {
	return []error{ErrReversalFailed, e.Err}
}
