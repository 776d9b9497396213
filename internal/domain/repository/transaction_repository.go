package repository

import (
	"context"

	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia de ventas confirmadas.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.SaleTransaction) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.SaleTransaction, error)
	// GetForUpdate bloquea la venta para que dos reversiones concurrentes no repongan dos veces.
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.SaleTransaction, error)
	// ListByOwner ordena por fecha descendente; productID vacío = todos los productos.
	ListByOwner(ctx context.Context, ownerID, productID string, limit, offset int) ([]*entity.SaleTransaction, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByProduct(ctx context.Context, ownerID, productID string) (int64, error)
}
