package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia del ledger de insumos.
// Todas las lecturas y escrituras van filtradas por ownerID; un insumo de otro
// propietario se comporta como inexistente (nil, nil).
type StockItemRepository interface {
	// Create devuelve domain.ErrDuplicateStockItem si (owner, name) ya existe.
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.StockItem, error)
	GetByName(ctx context.Context, ownerID, name string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.StockItem, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.StockItem, error)
	// Update persiste nombre, unidad y cantidad.
	Update(ctx context.Context, item *entity.StockItem) error
	UpdateQuantity(ctx context.Context, ownerID, id string, quantity decimal.Decimal) error
	Delete(ctx context.Context, ownerID, id string) error
}
