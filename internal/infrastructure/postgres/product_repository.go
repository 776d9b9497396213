package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas de receta viven en product_ingredients, ordenadas por position.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, owner_id, name, unit, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste la fila del producto (sin receta).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.OwnerID, product.Name, product.Unit, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProduct
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del propietario con su receta.
func (r *ProductRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product", `WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

// GetByName obtiene un producto por nombre (ya normalizado) con su receta.
func (r *ProductRepo) GetByName(ctx context.Context, ownerID, name string) (*entity.Product, error) {
	if !validID(ownerID) {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 AND name = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, ownerID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return r.loadRecipe(ctx, p)
}

// GetForShare bloquea el producto en modo compartido (SELECT FOR SHARE).
func (r *ProductRepo) GetForShare(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for share", `WHERE owner_id = $1 AND id = $2 FOR SHARE`, ownerID, id)
}

// GetForUpdate bloquea el producto en modo exclusivo (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.getOne(ctx, "get product for update", `WHERE owner_id = $1 AND id = $2 FOR UPDATE`, ownerID, id)
}

func (r *ProductRepo) getOne(ctx context.Context, op, where, ownerID, id string) (*entity.Product, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products ` + where
	p, err := scanProduct(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r.loadRecipe(ctx, p)
}

func (r *ProductRepo) loadRecipe(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	lines, err := r.ListRecipe(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Recipe = lines
	return p, nil
}

// ListByOwner lista los productos del propietario ordenados por nombre, con receta.
func (r *ProductRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Product, error) {
	if !validID(ownerID) {
		return []*entity.Product{}, nil
	}
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE owner_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	// Las recetas se cargan después de cerrar rows: una tx de pgx no admite dos consultas abiertas.
	for _, p := range list {
		if _, err := r.loadRecipe(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Update persiste nombre y unidad.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET name = $3, unit = $4, updated_at = $5 WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, product.OwnerID, product.ID, product.Name, product.Unit, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateProduct
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto; receta y ventas caen por FK ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRecipe devuelve las líneas con el nombre del insumo, en orden de inserción.
func (r *ProductRepo) ListRecipe(ctx context.Context, productID string) ([]entity.RecipeLine, error) {
	if !validID(productID) {
		return []entity.RecipeLine{}, nil
	}
	query := `
		SELECT pi.id, pi.product_id, pi.stock_item_id, s.name, pi.position, pi.quantity_required
		FROM product_ingredients pi
		JOIN stock_items s ON s.id = pi.stock_item_id
		WHERE pi.product_id = $1
		ORDER BY pi.position`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	lines := make([]entity.RecipeLine, 0)
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.StockItemID, &l.StockItemName, &l.Position, &l.QuantityRequired); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ReplaceRecipe borra todas las líneas del producto e inserta las nuevas con position 0..n-1.
// Debe ejecutarse dentro de TxRunner para que el reemplazo sea atómico.
func (r *ProductRepo) ReplaceRecipe(ctx context.Context, productID string, lines []entity.RecipeLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_ingredients WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, l := range lines {
		batch.Queue(`
			INSERT INTO product_ingredients (id, product_id, stock_item_id, position, quantity_required)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, productID, l.StockItemID, i, l.QuantityRequired)
	}
	if err := r.q.SendBatch(ctx, batch).Close(); err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrCrossOwnerReference
		case isUniqueViolation(err):
			return fmt.Errorf("insumo repetido en la receta: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert recipe lines: %w", err)
	}
	return nil
}

// DeleteRecipeLinesByStockItem elimina las líneas que usan el insumo y devuelve cuántas eran.
func (r *ProductRepo) DeleteRecipeLinesByStockItem(ctx context.Context, stockItemID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_ingredients WHERE stock_item_id = $1`, stockItemID)
	if err != nil {
		return 0, fmt.Errorf("delete recipe lines by stock item: %w", err)
	}
	return tag.RowsAffected(), nil
}
