package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

// reversalRestockRatio fracción de lo consumido que vuelve al stock cuando se borra una venta.
// Regla de negocio (merma): una reversión nunca devuelve el insumo completo.
var reversalRestockRatio = decimal.New(5, -1)

// ReversalRestockRatio devuelve la fracción que se repone al revertir una venta (0.5).
func ReversalRestockRatio() decimal.Decimal {
	return reversalRestockRatio
}

// Requirement cantidad de un insumo asociada a una línea de receta.
type Requirement struct {
	StockItemID   string
	StockItemName string
	Amount        decimal.Decimal
}

// SaleRequirements calcula lo que consume la venta, línea por línea y en orden de receta:
// required = quantity_required * quantity_sold.
func SaleRequirements(recipe []entity.RecipeLine, quantitySold decimal.Decimal) []Requirement {
	reqs := make([]Requirement, 0, len(recipe))
	for _, l := range recipe {
		reqs = append(reqs, Requirement{
			StockItemID:   l.StockItemID,
			StockItemName: l.StockItemName,
			Amount:        l.QuantityRequired.Mul(quantitySold),
		})
	}
	return reqs
}

// ReversalRestock calcula lo que se repone al revertir una venta:
// returned = quantity_required * quantity_sold; se repone returned * ReversalRestockRatio().
func ReversalRestock(recipe []entity.RecipeLine, quantitySold decimal.Decimal) []Requirement {
	reqs := SaleRequirements(recipe, quantitySold)
	for i := range reqs {
		reqs[i].Amount = reqs[i].Amount.Mul(reversalRestockRatio)
	}
	return reqs
}

// Totals agrupa los requerimientos por insumo conservando el orden de primera aparición.
func Totals(reqs []Requirement) ([]string, map[string]decimal.Decimal) {
	order := make([]string, 0, len(reqs))
	totals := make(map[string]decimal.Decimal, len(reqs))
	for _, r := range reqs {
		cur, ok := totals[r.StockItemID]
		if !ok {
			order = append(order, r.StockItemID)
			cur = decimal.Zero
		}
		totals[r.StockItemID] = cur.Add(r.Amount)
	}
	return order, totals
}

// CheckAvailability revisa TODAS las líneas contra el stock disponible antes de descontar nada.
// Si un insumo no alcanza devuelve *domain.InsufficientStockError con la primera línea que falla
// (Required acumulado si el insumo aparece en varias líneas). Si alcanza, devuelve el total por insumo.
func CheckAvailability(reqs []Requirement, available map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	acc := make(map[string]decimal.Decimal, len(reqs))
	for _, r := range reqs {
		avail, ok := available[r.StockItemID]
		if !ok {
			return nil, fmt.Errorf("insumo %s: %w", r.StockItemID, domain.ErrNotFound)
		}
		need := acc[r.StockItemID].Add(r.Amount)
		if avail.LessThan(need) {
			return nil, &domain.InsufficientStockError{
				StockItemID:   r.StockItemID,
				StockItemName: r.StockItemName,
				Required:      need,
				Available:     avail,
			}
		}
		acc[r.StockItemID] = need
	}
	return acc, nil
}
