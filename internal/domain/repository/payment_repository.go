package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// CustomerPaymentRepository persiste abonos de clientes.
type CustomerPaymentRepository interface {
	Create(ctx context.Context, payment *entity.CustomerPayment) error
	ListByCustomer(ctx context.Context, tenantID, customerID string, limit, offset int) ([]entity.CustomerPayment, error)
}

// SupplierPaymentRepository persiste pagos a proveedores.
type SupplierPaymentRepository interface {
	Create(ctx context.Context, payment *entity.SupplierPayment) error
	ListBySupplier(ctx context.Context, tenantID, supplierID string, limit, offset int) ([]entity.SupplierPayment, error)
}
