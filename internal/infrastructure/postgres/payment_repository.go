package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var _ repository.CustomerPaymentRepository = (*CustomerPaymentRepo)(nil)
var _ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)

// CustomerPaymentRepo implementación de CustomerPaymentRepository (usable con pool o tx).
type CustomerPaymentRepo struct {
	q Querier
}

// NewCustomerPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerPaymentRepository(q Querier) *CustomerPaymentRepo {
	return &CustomerPaymentRepo{q: q}
}

// Create persiste un abono de cliente.
func (r *CustomerPaymentRepo) Create(ctx context.Context, payment *entity.CustomerPayment) error {
	query := `
		INSERT INTO customer_payments (id, tenant_id, customer_id, amount, method, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.TenantID, payment.CustomerID, payment.Amount,
		payment.Method, payment.Notes, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer payment: %w", err)
	}
	return nil
}

// ListByCustomer lista abonos de un cliente con paginación.
func (r *CustomerPaymentRepo) ListByCustomer(ctx context.Context, tenantID, customerID string, limit, offset int) ([]entity.CustomerPayment, error) {
	query := `
		SELECT id, tenant_id, customer_id, amount, method, notes, created_by, created_at
		FROM customer_payments WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customer payments: %w", err)
	}
	defer rows.Close()
	var list []entity.CustomerPayment
	for rows.Next() {
		var p entity.CustomerPayment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.CustomerID, &p.Amount, &p.Method, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SupplierPaymentRepo implementación de SupplierPaymentRepository (usable con pool o tx).
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

// Create persiste un pago a proveedor.
func (r *SupplierPaymentRepo) Create(ctx context.Context, payment *entity.SupplierPayment) error {
	query := `
		INSERT INTO supplier_payments (id, tenant_id, supplier_id, amount, method, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		payment.ID, payment.TenantID, payment.SupplierID, payment.Amount,
		payment.Method, payment.Notes, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier payment: %w", err)
	}
	return nil
}

// ListBySupplier lista pagos a un proveedor con paginación.
func (r *SupplierPaymentRepo) ListBySupplier(ctx context.Context, tenantID, supplierID string, limit, offset int) ([]entity.SupplierPayment, error) {
	query := `
		SELECT id, tenant_id, supplier_id, amount, method, notes, created_by, created_at
		FROM supplier_payments WHERE tenant_id = $1 AND supplier_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	defer rows.Close()
	var list []entity.SupplierPayment
	for rows.Next() {
		var p entity.SupplierPayment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.SupplierID, &p.Amount, &p.Method, &p.Notes, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
