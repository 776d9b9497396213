package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto compuesto que se fabrica a partir de insumos.
// Recipe solo viene poblado cuando el repositorio carga las líneas.
type Product struct {
	ID        string
	OwnerID   string
	Name      string
	Unit      string
	Recipe    []RecipeLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeLine es una línea de la receta: cuánto de un insumo consume una unidad del producto.
// Position conserva el orden de inserción; el motor recorre la receta en ese orden.
type RecipeLine struct {
	ID               string
	ProductID        string
	StockItemID      string
	StockItemName    string
	Position         int
	QuantityRequired decimal.Decimal // > 0, por unidad de producto
}

// StockItemIDs devuelve los insumos de la receta en orden de línea, sin repetir.
func (p *Product) StockItemIDs() []string {
	seen := make(map[string]struct{}, len(p.Recipe))
	ids := make([]string, 0, len(p.Recipe))
	for _, l := range p.Recipe {
		if _, ok := seen[l.StockItemID]; ok {
			continue
		}
		seen[l.StockItemID] = struct{}{}
		ids = append(ids, l.StockItemID)
	}
	return ids
}
