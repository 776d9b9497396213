package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación en memoria del ledger de insumos.
type StockItemRepo struct {
	h handle
}

// NewStockItemRepository construye el repositorio fuera de transacción.
func NewStockItemRepository(store *Store) *StockItemRepo {
	return &StockItemRepo{h: handle{store: store}}
}

func (r *StockItemRepo) Create(_ context.Context, item *entity.StockItem) error {
	return r.h.write(func(s *state) error {
		if _, ok := s.stockItems[item.ID]; ok {
			return domain.ErrDuplicateStockItem
		}
		for _, it := range s.stockItems {
			if it.OwnerID == item.OwnerID && it.Name == item.Name {
				return domain.ErrDuplicateStockItem
			}
		}
		s.stockItems[item.ID] = *item
		return nil
	})
}

func (r *StockItemRepo) GetByID(_ context.Context, ownerID, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.h.read(func(s *state) error {
		if it, ok := s.stockItems[id]; ok && it.OwnerID == ownerID {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *StockItemRepo) GetByName(_ context.Context, ownerID, name string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.h.read(func(s *state) error {
		for _, it := range s.stockItems {
			if it.OwnerID == ownerID && it.Name == name {
				it := it
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de TxRunner.Run el almacén ya está serializado; equivale a GetByID.
func (r *StockItemRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *StockItemRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	err := r.h.read(func(s *state) error {
		for _, it := range s.stockItems {
			if it.OwnerID == ownerID {
				it := it
				list = append(list, &it)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *StockItemRepo) Update(_ context.Context, item *entity.StockItem) error {
	return r.h.write(func(s *state) error {
		cur, ok := s.stockItems[item.ID]
		if !ok || cur.OwnerID != item.OwnerID {
			return domain.ErrNotFound
		}
		for id, it := range s.stockItems {
			if id != item.ID && it.OwnerID == item.OwnerID && it.Name == item.Name {
				return domain.ErrDuplicateStockItem
			}
		}
		if item.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		s.stockItems[item.ID] = *item
		if cur.Name != item.Name {
			renameLines(s, item.ID, item.Name)
		}
		return nil
	})
}

func (r *StockItemRepo) UpdateQuantity(_ context.Context, ownerID, id string, quantity decimal.Decimal) error {
	return r.h.write(func(s *state) error {
		it, ok := s.stockItems[id]
		if !ok || it.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		if quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
		it.Quantity = quantity
		it.UpdatedAt = time.Now().UTC()
		s.stockItems[id] = it
		return nil
	})
}

func (r *StockItemRepo) Delete(_ context.Context, ownerID, id string) error {
	return r.h.write(func(s *state) error {
		it, ok := s.stockItems[id]
		if !ok || it.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		delete(s.stockItems, id)
		// Respaldo de la FK ON DELETE CASCADE.
		removeLinesByStockItem(s, id)
		return nil
	})
}

func renameLines(s *state, stockItemID, name string) {
	for pid, lines := range s.recipeLines {
		for i := range lines {
			if lines[i].StockItemID == stockItemID {
				lines[i].StockItemName = name
			}
		}
		s.recipeLines[pid] = lines
	}
}

func removeLinesByStockItem(s *state, stockItemID string) int64 {
	var n int64
	for pid, lines := range s.recipeLines {
		kept := lines[:0]
		for _, l := range lines {
			if l.StockItemID == stockItemID {
				n++
				continue
			}
			kept = append(kept, l)
		}
		s.recipeLines[pid] = kept
	}
	return n
}
