package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad para el ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
