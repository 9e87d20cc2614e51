package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto del ledger de saldos de clientes.
// El saldo solo se muta por deltas (AddBalance/SubBalance) o por el
// override administrativo SetBalance.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error

	// AddBalance suma amount al saldo (crédito otorgado).
	AddBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
	// SubBalance resta amount con precondición balance >= amount en una sola
	// escritura condicional; cero filas afectadas = InsufficientBalance.
	SubBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
	// SetBalance fija el saldo absoluto (override administrativo auditado).
	// Rechaza valores negativos.
	SetBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
}
