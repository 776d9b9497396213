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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionSelect = `
	SELECT t.id, t.owner_id, t.product_id, p.name, t.quantity_sold, t.date
	FROM transactions t
	JOIN products p ON p.id = t.product_id`

func scanTransaction(row pgx.Row) (*entity.SaleTransaction, error) {
	var t entity.SaleTransaction
	if err := row.Scan(&t.ID, &t.OwnerID, &t.ProductID, &t.ProductName, &t.QuantitySold, &t.Date); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create persiste una venta confirmada.
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.SaleTransaction) error {
	query := `
		INSERT INTO transactions (id, owner_id, product_id, quantity_sold, date)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, txn.ID, txn.OwnerID, txn.ProductID, txn.QuantitySold, txn.Date)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una venta del propietario.
func (r *TransactionRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.SaleTransaction, error) {
	return r.getOne(ctx, "get transaction", "", ownerID, id)
}

// GetForUpdate obtiene la venta y bloquea su fila (FOR UPDATE OF t).
func (r *TransactionRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.SaleTransaction, error) {
	return r.getOne(ctx, "get transaction for update", " FOR UPDATE OF t", ownerID, id)
}

func (r *TransactionRepo) getOne(ctx context.Context, op, lock, ownerID, id string) (*entity.SaleTransaction, error) {
	if !validID(ownerID) || !validID(id) {
		return nil, nil
	}
	query := transactionSelect + ` WHERE t.owner_id = $1 AND t.id = $2` + lock
	t, err := scanTransaction(r.q.QueryRow(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListByOwner lista las ventas más recientes primero; productID vacío = todas.
func (r *TransactionRepo) ListByOwner(ctx context.Context, ownerID, productID string, limit, offset int) ([]*entity.SaleTransaction, error) {
	if !validID(ownerID) || (productID != "" && !validID(productID)) {
		return []*entity.SaleTransaction{}, nil
	}
	query := transactionSelect + `
		WHERE t.owner_id = $1 AND ($2 = '' OR t.product_id::text = $2)
		ORDER BY t.date DESC, t.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, ownerID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.SaleTransaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina la venta. No toca stock: la reversión la hace el motor antes de llamar aquí.
func (r *TransactionRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByProduct elimina todas las ventas de un producto (borrado de producto).
func (r *TransactionRepo) DeleteByProduct(ctx context.Context, ownerID, productID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND product_id = $2`, ownerID, productID)
	if err != nil {
		return 0, fmt.Errorf("delete transactions by product: %w", err)
	}
	return tag.RowsAffected(), nil
}
