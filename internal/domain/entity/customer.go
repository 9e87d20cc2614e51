package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del tenant. Balance es la deuda del cliente
// con el negocio (crédito otorgado pendiente). Invariante: Balance >= 0.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Phone     string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
