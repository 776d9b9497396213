package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria de las ventas.
type TransactionRepo struct {
	h handle
}

// NewTransactionRepository construye el repositorio fuera de transacción.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{h: handle{store: store}}
}

func (r *TransactionRepo) Create(_ context.Context, txn *entity.SaleTransaction) error {
	return r.h.write(func(s *state) error {
		p, ok := s.products[txn.ProductID]
		if !ok || p.OwnerID != txn.OwnerID {
			return domain.ErrNotFound
		}
		t := *txn
		t.ProductName = p.Name
		s.transactions[t.ID] = t
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, ownerID, id string) (*entity.SaleTransaction, error) {
	var out *entity.SaleTransaction
	err := r.h.read(func(s *state) error {
		if t, ok := s.transactions[id]; ok && t.OwnerID == ownerID {
			t.ProductName = s.products[t.ProductID].Name
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.SaleTransaction, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *TransactionRepo) ListByOwner(_ context.Context, ownerID, productID string, limit, offset int) ([]*entity.SaleTransaction, error) {
	var list []*entity.SaleTransaction
	err := r.h.read(func(s *state) error {
		for _, t := range s.transactions {
			if t.OwnerID != ownerID || (productID != "" && t.ProductID != productID) {
				continue
			}
			t.ProductName = s.products[t.ProductID].Name
			t := t
			list = append(list, &t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].ID > list[j].ID
		}
		return list[i].Date.After(list[j].Date)
	})
	return page(list, limit, offset), nil
}

func (r *TransactionRepo) Delete(_ context.Context, ownerID, id string) error {
	return r.h.write(func(s *state) error {
		t, ok := s.transactions[id]
		if !ok || t.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		delete(s.transactions, id)
		return nil
	})
}

func (r *TransactionRepo) DeleteByProduct(_ context.Context, ownerID, productID string) (int64, error) {
	var n int64
	err := r.h.write(func(s *state) error {
		for id, t := range s.transactions {
			if t.OwnerID == ownerID && t.ProductID == productID {
				delete(s.transactions, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
