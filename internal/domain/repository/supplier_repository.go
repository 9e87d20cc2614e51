package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SupplierRepository define el puerto del ledger de saldos de proveedores.
// Mecánica idéntica a CustomerRepository con sentido real opuesto
// (lo que el negocio debe, no lo que le deben).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Supplier, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error

	AddBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
	// SubBalance con precondición condicional; cero filas = InsufficientBalance.
	SubBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
	// SetBalance override administrativo; rechaza negativos.
	SetBalance(ctx context.Context, tenantID, id string, amount decimal.Decimal) error
}
