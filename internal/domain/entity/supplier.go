package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier representa un proveedor del tenant. Balance es lo que el negocio
// le debe al proveedor (compras a crédito pendientes). Invariante: Balance >= 0.
type Supplier struct {
	ID        string
	TenantID  string
	Name      string
	Phone     string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
