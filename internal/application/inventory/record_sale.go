package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
)

// RecordSaleFromRequest adapta el request HTTP al motor RecordSale(ctx, owner, product, quantity).
func (e *TransactionEngine) RecordSaleFromRequest(ctx context.Context, ownerID string, in dto.RecordSaleRequest) (*dto.TransactionResponse, error) {
	return e.RecordSale(ctx, ownerID, in.ProductID, in.QuantitySold)
}
