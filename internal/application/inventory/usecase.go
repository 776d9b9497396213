package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
	"github.com/jhoicas/Inventario-recetas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-recetas/internal/domain/repository"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
)

const tracerName = "github.com/jhoicas/Inventario-recetas/internal/application/inventory"

// TransactionEngine registra ventas (consumo de insumos según receta, todo o nada)
// y las revierte al borrarlas (repone la mitad de lo consumido y elimina la venta).
type TransactionEngine struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
	log      *logger.Logger
}

// NewTransactionEngine construye el motor.
func NewTransactionEngine(txRunner TxRunner, txRepo repository.TransactionRepository, log *logger.Logger) *TransactionEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &TransactionEngine{txRunner: txRunner, txRepo: txRepo, log: log.Named("transaction_engine")}
}

// RecordSale inicia una transacción, bloquea el producto (FOR SHARE) y cada insumo de la receta
// (SELECT FOR UPDATE), verifica TODAS las líneas y solo entonces descuenta y guarda la venta.
// Si algún insumo no alcanza devuelve *domain.InsufficientStockError y no se escribe nada.
func (e *TransactionEngine) RecordSale(ctx context.Context, ownerID, productID string, quantitySold decimal.Decimal) (*dto.TransactionResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "TransactionEngine.RecordSale")
	defer span.End()
	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.String("sale.quantity", quantitySold.String()),
	)

	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, fmt.Errorf("product requerido: %w", domain.ErrInvalidInput)
	}
	if !quantitySold.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("quantity_sold debe ser > 0: %w", domain.ErrInvalidInput)
	}

	var (
		txn     *entity.SaleTransaction
		changes []dto.StockChangeDTO
	)
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		product, err := productRepo.GetForShare(ctx, ownerID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		items, err := lockItems(ctx, stockRepo, ownerID, product.StockItemIDs())
		if err != nil {
			return err
		}
		available := make(map[string]decimal.Decimal, len(items))
		for id, it := range items {
			available[id] = it.Quantity
		}

		reqs := inventory.SaleRequirements(product.Recipe, quantitySold)
		if _, err := inventory.CheckAvailability(reqs, available); err != nil {
			return err
		}

		order, totals := inventory.Totals(reqs)
		for _, id := range order {
			next := available[id].Sub(totals[id])
			if err := stockRepo.UpdateQuantity(ctx, ownerID, id, next); err != nil {
				return err
			}
			changes = append(changes, dto.StockChangeDTO{
				StockItemID:   id,
				StockItemName: items[id].Name,
				Delta:         totals[id].Neg(),
				Quantity:      next,
			})
		}

		txn = &entity.SaleTransaction{
			ID:           uuid.New().String(),
			OwnerID:      ownerID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			QuantitySold: quantitySold,
			Date:         time.Now().UTC(),
		}
		return txRepo.Create(ctx, txn)
	})
	if err != nil {
		e.failSpan(span, err)
		var ise *domain.InsufficientStockError
		if errors.As(err, &ise) {
			e.log.Warn().Str("owner_id", ownerID).Str("product_id", productID).
				Str("stock_item_id", ise.StockItemID).Str("required", ise.Required.String()).
				Str("available", ise.Available.String()).Msg("venta rechazada por stock insuficiente")
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("transaction.id", txn.ID))
	e.log.Info().Str("owner_id", ownerID).Str("product_id", productID).
		Str("transaction_id", txn.ID).Str("quantity_sold", quantitySold.String()).Msg("venta registrada")

	out := toTransactionResponse(txn)
	out.StockChanges = changes
	return out, nil
}

// ReverseThenRemove repone stock según la receta ACTUAL del producto
// (quantity_required * quantity_sold * ReversalRestockRatio() por línea) y elimina la venta,
// todo en una transacción. Si un insumo ya no existe devuelve *domain.ReversalFailedError.
func (e *TransactionEngine) ReverseThenRemove(ctx context.Context, ownerID, transactionID string) (*dto.ReversalResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "TransactionEngine.ReverseThenRemove")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", transactionID))

	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	var restocked []dto.StockChangeDTO
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockItemRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		txn, err := txRepo.GetForUpdate(ctx, ownerID, transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return domain.ErrNotFound
		}
		fail := func(cause error) error {
			return &domain.ReversalFailedError{TransactionID: transactionID, Err: cause}
		}

		product, err := productRepo.GetForShare(ctx, ownerID, txn.ProductID)
		if err != nil {
			return fail(err)
		}
		if product == nil {
			return fail(fmt.Errorf("producto %s: %w", txn.ProductID, domain.ErrNotFound))
		}

		reqs := inventory.ReversalRestock(product.Recipe, txn.QuantitySold)
		order, totals := inventory.Totals(reqs)
		items, err := lockItems(ctx, stockRepo, ownerID, order)
		if err != nil {
			return fail(err)
		}
		for _, id := range order {
			next := items[id].Quantity.Add(totals[id])
			if err := stockRepo.UpdateQuantity(ctx, ownerID, id, next); err != nil {
				return fail(err)
			}
			restocked = append(restocked, dto.StockChangeDTO{
				StockItemID:   id,
				StockItemName: items[id].Name,
				Delta:         totals[id],
				Quantity:      next,
			})
		}
		return txRepo.Delete(ctx, ownerID, transactionID)
	})
	if err != nil {
		e.failSpan(span, err)
		if errors.Is(err, domain.ErrReversalFailed) {
			e.log.Error().Err(err).Str("owner_id", ownerID).Str("transaction_id", transactionID).Msg("reversión fallida")
		}
		return nil, err
	}

	e.log.Info().Str("owner_id", ownerID).Str("transaction_id", transactionID).
		Int("items_restocked", len(restocked)).Msg("venta revertida y eliminada")
	return &dto.ReversalResponse{TransactionID: transactionID, Restocked: restocked}, nil
}

// DeleteTransaction borra una venta; siempre pasa por la reversión de stock.
func (e *TransactionEngine) DeleteTransaction(ctx context.Context, ownerID, transactionID string) (*dto.ReversalResponse, error) {
	return e.ReverseThenRemove(ctx, ownerID, transactionID)
}

// GetTransaction devuelve una venta del propietario.
func (e *TransactionEngine) GetTransaction(ctx context.Context, ownerID, id string) (*dto.TransactionResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	t, err := e.txRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(t), nil
}

// ListTransactions devuelve las ventas más recientes primero; productID vacío = todas.
func (e *TransactionEngine) ListTransactions(ctx context.Context, ownerID, productID string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := e.txRepo.ListByOwner(ctx, ownerID, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (e *TransactionEngine) failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// lockItems bloquea (SELECT FOR UPDATE) los insumos en orden ascendente de id.
// Un insumo que no existe para el propietario devuelve domain.ErrNotFound.
func lockItems(ctx context.Context, stockRepo repository.StockItemRepository, ownerID string, ids []string) (map[string]*entity.StockItem, error) {
	items := make(map[string]*entity.StockItem, len(ids))
	for _, id := range lockOrder(ids) {
		it, err := stockRepo.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
		}
		items[id] = it
	}
	return items, nil
}
