package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del catálogo de recetas.
type ProductRepo struct {
	h handle
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{h: handle{store: store}}
}

func withRecipe(s *state, p entity.Product) *entity.Product {
	p.Recipe = append([]entity.RecipeLine{}, s.recipeLines[p.ID]...)
	return &p
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.h.write(func(s *state) error {
		if _, ok := s.products[product.ID]; ok {
			return domain.ErrDuplicateProduct
		}
		for _, p := range s.products {
			if p.OwnerID == product.OwnerID && p.Name == product.Name {
				return domain.ErrDuplicateProduct
			}
		}
		p := *product
		p.Recipe = nil
		s.products[p.ID] = p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(func(s *state) error {
		if p, ok := s.products[id]; ok && p.OwnerID == ownerID {
			out = withRecipe(s, p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByName(_ context.Context, ownerID, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(func(s *state) error {
		for _, p := range s.products {
			if p.OwnerID == ownerID && p.Name == name {
				out = withRecipe(s, p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetForShare(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, ownerID, id)
}

func (r *ProductRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.h.read(func(s *state) error {
		for _, p := range s.products {
			if p.OwnerID == ownerID {
				list = append(list, withRecipe(s, p))
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

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.h.write(func(s *state) error {
		cur, ok := s.products[product.ID]
		if !ok || cur.OwnerID != product.OwnerID {
			return domain.ErrNotFound
		}
		for id, p := range s.products {
			if id != product.ID && p.OwnerID == product.OwnerID && p.Name == product.Name {
				return domain.ErrDuplicateProduct
			}
		}
		p := *product
		p.Recipe = nil
		s.products[p.ID] = p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, ownerID, id string) error {
	return r.h.write(func(s *state) error {
		p, ok := s.products[id]
		if !ok || p.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		delete(s.products, id)
		delete(s.recipeLines, id)
		for tid, t := range s.transactions {
			if t.ProductID == id {
				delete(s.transactions, tid)
			}
		}
		return nil
	})
}

func (r *ProductRepo) ListRecipe(_ context.Context, productID string) ([]entity.RecipeLine, error) {
	var out []entity.RecipeLine
	err := r.h.read(func(s *state) error {
		out = append([]entity.RecipeLine{}, s.recipeLines[productID]...)
		return nil
	})
	return out, err
}

func (r *ProductRepo) ReplaceRecipe(_ context.Context, productID string, lines []entity.RecipeLine) error {
	return r.h.write(func(s *state) error {
		p, ok := s.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		next := make([]entity.RecipeLine, 0, len(lines))
		for i, l := range lines {
			item, ok := s.stockItems[l.StockItemID]
			if !ok || item.OwnerID != p.OwnerID {
				return domain.ErrCrossOwnerReference
			}
			l.ProductID = productID
			l.Position = i
			l.StockItemName = item.Name
			next = append(next, l)
		}
		if len(next) == 0 {
			delete(s.recipeLines, productID)
			return nil
		}
		s.recipeLines[productID] = next
		return nil
	})
}

func (r *ProductRepo) DeleteRecipeLinesByStockItem(_ context.Context, stockItemID string) (int64, error) {
	var n int64
	err := r.h.write(func(s *state) error {
		n = removeLinesByStockItem(s, stockItemID)
		return nil
	})
	return n, err
}
