package inventory

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-recetas/internal/application/dto"
	"github.com/jhoicas/Inventario-recetas/internal/domain"
	"github.com/jhoicas/Inventario-recetas/internal/domain/entity"
)

const (
	maxNameLen = 100
	maxUnitLen = 10
)

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// cleanName normaliza y valida un nombre de insumo o producto.
func cleanName(name string) (string, error) {
	n := entity.NormalizeName(name)
	if n == "" || utf8.RuneCountInString(n) > maxNameLen {
		return "", fmt.Errorf("nombre: %w", domain.ErrInvalidInput)
	}
	return n, nil
}

func cleanUnit(unit string) (string, error) {
	u := entity.NormalizeName(unit)
	if u == "" || utf8.RuneCountInString(u) > maxUnitLen {
		return "", fmt.Errorf("unidad: %w", domain.ErrInvalidInput)
	}
	return u, nil
}

// buildRecipe valida las líneas de entrada y las convierte a entidades en orden de inserción.
// Un mismo insumo no puede aparecer dos veces en la receta.
func buildRecipe(productID string, in []dto.RecipeLineRequest) ([]entity.RecipeLine, error) {
	lines := make([]entity.RecipeLine, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, l := range in {
		if l.StockItemID == "" {
			return nil, fmt.Errorf("línea %d sin insumo: %w", i, domain.ErrInvalidInput)
		}
		if !l.QuantityRequired.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("línea %d: quantity_required debe ser > 0: %w", i, domain.ErrInvalidInput)
		}
		if _, dup := seen[l.StockItemID]; dup {
			return nil, fmt.Errorf("insumo %s repetido en la receta: %w", l.StockItemID, domain.ErrInvalidInput)
		}
		seen[l.StockItemID] = struct{}{}
		lines = append(lines, entity.RecipeLine{
			ID:               uuid.New().String(),
			ProductID:        productID,
			StockItemID:      l.StockItemID,
			Position:         i,
			QuantityRequired: l.QuantityRequired,
		})
	}
	return lines, nil
}

// lockOrder devuelve los ids ordenados ascendentemente: dos comandos que toquen los
// mismos insumos los bloquean en el mismo orden y no se interbloquean.
func lockOrder(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

func toStockItemResponse(s *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:        s.ID,
		Name:      s.Name,
		Quantity:  s.Quantity,
		Unit:      s.Unit,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	lines := make([]dto.RecipeLineResponse, 0, len(p.Recipe))
	for _, l := range p.Recipe {
		lines = append(lines, dto.RecipeLineResponse{
			StockItemID:      l.StockItemID,
			StockItemName:    l.StockItemName,
			QuantityRequired: l.QuantityRequired,
		})
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Unit:        p.Unit,
		Ingredients: lines,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// formattedDateLayout formato de fecha legible que acompaña a cada venta.
const formattedDateLayout = "2006-01-02 15:04:05"

func toTransactionResponse(t *entity.SaleTransaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            t.ID,
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		QuantitySold:  t.QuantitySold,
		Date:          t.Date,
		FormattedDate: t.Date.Format(formattedDateLayout),
	}
}
