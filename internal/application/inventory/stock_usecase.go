package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
)

// StockLedgerUseCase administra los insumos de un propietario y su cantidad disponible.
// Toda escritura pasa por TxRunner; la cantidad nunca queda negativa.
type StockLedgerUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockItemRepository
	log       *logger.Logger
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, stockRepo repository.StockItemRepository, log *logger.Logger) *StockLedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockLedgerUseCase{txRunner: txRunner, stockRepo: stockRepo, log: log.Named("stock_ledger")}
}

// Create registra un insumo nuevo. (owner, name) debe ser único.
func (uc *StockLedgerUseCase) Create(ctx context.Context, ownerID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
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
	if in.Quantity.IsNegative() {
		return nil, fmt.Errorf("quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Quantity:  in.Quantity,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		existing, err := stockRepo.GetByName(ctx, ownerID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateStockItem
		}
		return stockRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// Get devuelve un insumo del propietario. Un insumo ajeno se reporta como inexistente.
func (uc *StockLedgerUseCase) Get(ctx context.Context, ownerID, id string) (*dto.StockItemResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	item, err := uc.stockRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// List devuelve los insumos del propietario ordenados por nombre.
func (uc *StockLedgerUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) (*dto.StockItemListResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	items, err := uc.stockRepo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toStockItemResponse(it))
	}
	return &dto.StockItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Adjust suma delta a la cantidad disponible bajo bloqueo de fila.
// Si el resultado quedaría negativo devuelve *domain.InsufficientStockError y no escribe nada.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, ownerID, id string, delta decimal.Decimal) (*dto.StockItemResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	var out *entity.StockItem
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		item, err := stockRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		next := item.Quantity.Add(delta)
		if next.IsNegative() {
			return &domain.InsufficientStockError{
				StockItemID:   item.ID,
				StockItemName: item.Name,
				Required:      delta.Neg(),
				Available:     item.Quantity,
			}
		}
		if err := stockRepo.UpdateQuantity(ctx, ownerID, id, next); err != nil {
			return err
		}
		item.Quantity = next
		item.UpdatedAt = time.Now().UTC()
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("owner_id", ownerID).Str("stock_item_id", id).
		Str("delta", delta.String()).Str("quantity", out.Quantity.String()).Msg("stock ajustado")
	return toStockItemResponse(out), nil
}

// SetQuantity fija la cantidad disponible (edición directa). Rechaza valores negativos.
func (uc *StockLedgerUseCase) SetQuantity(ctx context.Context, ownerID, id string, quantity decimal.Decimal) (*dto.StockItemResponse, error) {
	return uc.Update(ctx, ownerID, id, dto.UpdateStockItemRequest{Quantity: &quantity})
}

// Update modifica nombre, unidad y/o cantidad. Un renombre que choca con otro insumo
// del mismo propietario devuelve domain.ErrDuplicateStockItem.
func (uc *StockLedgerUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateStockItemRequest) (*dto.StockItemResponse, error) {
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
	if in.Quantity != nil && in.Quantity.IsNegative() {
		return nil, fmt.Errorf("quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}

	var out *entity.StockItem
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		_ repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		item, err := stockRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if name != "" && name != item.Name {
			other, err := stockRepo.GetByName(ctx, ownerID, name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != item.ID {
				return domain.ErrDuplicateStockItem
			}
			item.Name = name
		}
		if unit != "" {
			item.Unit = unit
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		item.UpdatedAt = time.Now().UTC()
		if err := stockRepo.Update(ctx, item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockItemResponse(out), nil
}

// Delete elimina el insumo y, en la misma transacción, las líneas de receta que lo usan.
// Los productos afectados quedan con la receta reducida.
func (uc *StockLedgerUseCase) Delete(ctx context.Context, ownerID, id string) (*dto.DeleteStockItemResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	var removed int64
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		_ repository.TransactionRepository,
	) error {
		item, err := stockRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if removed, err = productRepo.DeleteRecipeLinesByStockItem(ctx, id); err != nil {
			return err
		}
		return stockRepo.Delete(ctx, ownerID, id)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("owner_id", ownerID).Str("stock_item_id", id).
		Int64("recipe_lines_removed", removed).Msg("insumo eliminado")
	return &dto.DeleteStockItemResponse{ID: id, RecipeLinesRemoved: removed}, nil
}
