package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, tenant_id, supplier_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.TenantID, nullify(purchase.SupplierID), purchase.TotalAmount, purchase.PaidAmount,
		purchase.PaymentType, purchase.CreatedBy, purchase.CreatedAt, purchase.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_items (id, purchase_id, item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range purchase.Items {
		it := purchase.Items[i]
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, purchase.ID, it.ItemID, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la compra con sus líneas, o nil si no existe en el tenant.
func (r *PurchaseRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Purchase, error) {
	query := `
		SELECT id, tenant_id, supplier_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at
		FROM purchases WHERE tenant_id = $1 AND id = $2`
	var p entity.Purchase
	var supplierID *string
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&p.ID, &p.TenantID, &supplierID, &p.TotalAmount, &p.PaidAmount,
		&p.PaymentType, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p.SupplierID = deref(supplierID)

	itemQuery := `
		SELECT id, purchase_id, item_id, quantity, price
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// List lista cabeceras de compra del tenant con paginación (sin líneas).
func (r *PurchaseRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Purchase, error) {
	query := `
		SELECT id, tenant_id, supplier_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at
		FROM purchases WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var supplierID *string
		if err := rows.Scan(&p.ID, &p.TenantID, &supplierID, &p.TotalAmount, &p.PaidAmount,
			&p.PaymentType, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.SupplierID = deref(supplierID)
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete borra líneas y cabecera (void).
func (r *PurchaseRepo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("compra no encontrada")
	}
	return nil
}
