package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un insumo (materia prima) de un propietario.
// (OwnerID, Name) es único; Quantity nunca queda negativa en un estado confirmado.
type StockItem struct {
	ID        string
	OwnerID   string
	Name      string
	Quantity  decimal.Decimal // cantidad disponible en la unidad Unit
	Unit      string          // g, kg, ml, und...
	CreatedAt time.Time
	UpdatedAt time.Time
}
