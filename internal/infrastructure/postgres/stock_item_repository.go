package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, owner_id, name, quantity, unit, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Quantity, &s.Unit, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un insumo nuevo.
func (r *StockItemRepo) Create(ctx context.Context, item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OwnerID, item.Name, item.Quantity, item.Unit, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateStockItem
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo del propietario.
func (r *StockItemRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, "get stock item", `WHERE owner_id = $1 AND id = $2`, ownerID, id)
}

// GetByName obtiene un insumo por nombre (ya normalizado).
func (r *StockItemRepo) GetByName(ctx context.Context, ownerID, name string) (*entity.StockItem, error) {
	if !validID(ownerID) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE owner_id = $1 AND name = $2`
	s, err := scanStockItem(r.q.QueryRow(ctx, query, ownerID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item by name: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el insumo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.StockItem, error) {
	return r.getOne(ctx, "get stock item for update", `WHERE owner_id = $1 AND id = $2 FOR UPDATE`, ownerID, id)
}

func (r *StockItemRepo) getOne(ctx context.Context, op, where, ownerID, id string) (*entity.StockItem, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + stockItemColumns + ` FROM stock_items ` + where
	s, err := scanStockItem(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ListByOwner lista los insumos del propietario ordenados por nombre.
func (r *StockItemRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.StockItem, error) {
	if !validID(ownerID) {
		return []*entity.StockItem{}, nil
	}
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_items WHERE owner_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockItem, 0)
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update persiste nombre, cantidad y unidad.
func (r *StockItemRepo) Update(ctx context.Context, item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $3, quantity = $4, unit = $5, updated_at = $6
		WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, item.OwnerID, item.ID, item.Name, item.Quantity, item.Unit, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateStockItem
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad disponible. El CHECK (quantity >= 0) de la tabla es el último resguardo.
func (r *StockItemRepo) UpdateQuantity(ctx context.Context, ownerID, id string, quantity decimal.Decimal) error {
	query := `UPDATE stock_items SET quantity = $3, updated_at = now() WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, ownerID, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el insumo. Las líneas de receta que lo usan caen por la FK ON DELETE CASCADE.
func (r *StockItemRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_items WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
