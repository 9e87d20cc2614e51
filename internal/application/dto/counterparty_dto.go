package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCounterpartyRequest alta de cliente o proveedor.
type CreateCounterpartyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CounterpartyResponse representación pública de cliente/proveedor.
type CounterpartyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SetBalanceRequest override administrativo de saldo absoluto.
// Reason es obligatorio: queda en la auditoría.
type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Reason  string          `json:"reason"`
}

// SetBalancesRequest override masivo de saldos de clientes.
type SetBalancesRequest struct {
	Reason  string            `json:"reason"`
	Entries []SetBalanceEntry `json:"entries"`
}

// SetBalanceEntry un cliente y su saldo absoluto nuevo.
type SetBalanceEntry struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// SetSupplierBalancesRequest override masivo de saldos de proveedores.
type SetSupplierBalancesRequest struct {
	Reason  string                    `json:"reason"`
	Entries []SetSupplierBalanceEntry `json:"entries"`
}

// SetSupplierBalanceEntry un proveedor y su saldo absoluto nuevo.
type SetSupplierBalanceEntry struct {
	SupplierID string          `json:"supplier_id"`
	Balance    decimal.Decimal `json:"balance"`
}
