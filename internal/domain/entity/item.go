package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del inventario. Quantity se muta únicamente a
// través del ledger de stock (escrituras condicionales), nunca por asignación
// directa. Invariante: Quantity >= 0 tras toda operación confirmada.
type Item struct {
	ID           string
	TenantID     string
	Name         string
	SKU          string
	Quantity     int64
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
