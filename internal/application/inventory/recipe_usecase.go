package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
)

// RecipeCatalogUseCase administra productos y sus recetas (líneas producto → insumo).
type RecipeCatalogUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewRecipeCatalogUseCase construye el caso de uso.
func NewRecipeCatalogUseCase(txRunner TxRunner, productRepo repository.ProductRepository, log *logger.Logger) *RecipeCatalogUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RecipeCatalogUseCase{txRunner: txRunner, productRepo: productRepo, log: log.Named("recipe_catalog")}
}

// CreateProduct crea el producto y todas sus líneas en una sola transacción.
// Cada línea debe referenciar un insumo del mismo propietario.
func (uc *RecipeCatalogUseCase) CreateProduct(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	unit, err := cleanUnit(in.Unit)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lines, err := buildRecipe(product.ID, in.Ingredients)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		existing, err := productRepo.GetByName(ctx, ownerID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateProduct
		}
		if err := resolveRecipe(ctx, stockRepo, ownerID, lines); err != nil {
			return err
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return productRepo.ReplaceRecipe(ctx, product.ID, lines)
	})
	if err != nil {
		return nil, err
	}
	product.Recipe = lines
	uc.log.Info().Str("owner_id", ownerID).Str("product_id", product.ID).
		Int("lines", len(lines)).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetProduct devuelve el producto con su receta.
func (uc *RecipeCatalogUseCase) GetProduct(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	p, err := uc.productRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts devuelve los productos del propietario ordenados por nombre.
func (uc *RecipeCatalogUseCase) ListProducts(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.productRepo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetRecipe devuelve las líneas de la receta en orden de inserción.
func (uc *RecipeCatalogUseCase) GetRecipe(ctx context.Context, ownerID, productID string) ([]dto.RecipeLineResponse, error) {
	p, err := uc.GetProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	return p.Ingredients, nil
}

// ReplaceRecipe borra todas las líneas del producto e inserta las nuevas como una unidad.
// El producto queda bloqueado en exclusiva, así una venta concurrente ve la receta vieja o la nueva.
func (uc *RecipeCatalogUseCase) ReplaceRecipe(ctx context.Context, ownerID, productID string, in []dto.RecipeLineRequest) (*dto.ProductResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "RecipeCatalog.ReplaceRecipe")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", productID), attribute.Int("recipe.lines", len(in)))

	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	lines, err := buildRecipe(productID, in)
	if err != nil {
		return nil, err
	}

	var out *entity.Product
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, ownerID, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := resolveRecipe(ctx, stockRepo, ownerID, lines); err != nil {
			return err
		}
		if err := productRepo.ReplaceRecipe(ctx, productID, lines); err != nil {
			return err
		}
		p.Recipe = lines
		out = p
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	uc.log.Info().Str("owner_id", ownerID).Str("product_id", productID).
		Int("lines", len(lines)).Msg("receta reemplazada")
	return toProductResponse(out), nil
}

// UpdateProduct modifica nombre y/o unidad. La receta solo se reemplaza si vienen líneas.
func (uc *RecipeCatalogUseCase) UpdateProduct(ctx context.Context, ownerID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	var name, unit string
	var err error
	if in.Name != nil {
		if name, err = cleanName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Unit != nil {
		if unit, err = cleanUnit(*in.Unit); err != nil {
			return nil, err
		}
	}
	var lines []entity.RecipeLine
	if len(in.Ingredients) > 0 {
		if lines, err = buildRecipe(productID, in.Ingredients); err != nil {
			return nil, err
		}
	}

	var out *entity.Product
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, ownerID, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if name != "" && name != p.Name {
			other, err := productRepo.GetByName(ctx, ownerID, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != p.ID {
				return domain.ErrDuplicateProduct
			}
			p.Name = name
		}
		if unit != "" {
			p.Unit = unit
		}
		p.UpdatedAt = time.Now().UTC()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		if lines != nil {
			if err := resolveRecipe(ctx, stockRepo, ownerID, lines); err != nil {
				return err
			}
			if err := productRepo.ReplaceRecipe(ctx, productID, lines); err != nil {
				return err
			}
			p.Recipe = lines
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// DeleteProduct elimina el producto junto con su receta y sus ventas.
// Las ventas borradas así no reponen stock: solo DeleteTransaction revierte.
func (uc *RecipeCatalogUseCase) DeleteProduct(ctx context.Context, ownerID, productID string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	var removed int64
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockItemRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, ownerID, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if removed, err = txRepo.DeleteByProduct(ctx, ownerID, productID); err != nil {
			return err
		}
		if err := productRepo.ReplaceRecipe(ctx, productID, nil); err != nil {
			return err
		}
		return productRepo.Delete(ctx, ownerID, productID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("owner_id", ownerID).Str("product_id", productID).
		Int64("transactions_removed", removed).Msg("producto eliminado")
	return nil
}

// resolveRecipe verifica que cada insumo sea del propietario y completa su nombre.
// Un insumo inexistente o ajeno se reporta igual, para no revelar datos de otro propietario.
func resolveRecipe(ctx context.Context, stockRepo repository.StockItemRepository, ownerID string, lines []entity.RecipeLine) error {
	for i := range lines {
		item, err := stockRepo.GetByID(ctx, ownerID, lines[i].StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrCrossOwnerReference
		}
		lines[i].StockItemName = item.Name
	}
	return nil
}
