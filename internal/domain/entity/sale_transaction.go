package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTransaction es una venta confirmada. Es inmutable: solo se puede borrar,
// y el borrado repone stock según la política de reversión.
type SaleTransaction struct {
	ID           string
	OwnerID      string
	ProductID    string
	ProductName  string
	QuantitySold decimal.Decimal // > 0
	Date         time.Time
}
