package repository

import (
	"context"

	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo de recetas.
// Los métodos Get* devuelven el producto con su receta cargada en orden de línea.
type ProductRepository interface {
	// Create persiste solo la fila del producto; la receta se guarda con ReplaceRecipe.
	// Devuelve domain.ErrDuplicateProduct si (owner, name) ya existe.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error)
	GetByName(ctx context.Context, ownerID, name string) (*entity.Product, error)
	// GetForShare bloquea el producto en modo compartido: varias ventas pueden leerlo,
	// pero ReplaceRecipe espera a que terminen.
	GetForShare(ctx context.Context, ownerID, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto en modo exclusivo (reemplazo de receta, borrado).
	GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, ownerID, id string) error

	// ListRecipe devuelve las líneas de la receta ordenadas por posición.
	ListRecipe(ctx context.Context, productID string) ([]entity.RecipeLine, error)
	// ReplaceRecipe borra todas las líneas del producto e inserta las nuevas (reemplazo total).
	ReplaceRecipe(ctx context.Context, productID string, lines []entity.RecipeLine) error
	// DeleteRecipeLinesByStockItem elimina las líneas que referencian el insumo; devuelve cuántas.
	DeleteRecipeLinesByStockItem(ctx context.Context, stockItemID string) (int64, error)
}
