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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, tenant_id, supplier_id, status, total_amount, converted_purchase_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.TenantID, nullify(order.SupplierID), order.Status,
		order.TotalAmount, order.ConvertedPurchaseID, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, item_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range order.Items {
		it := order.Items[i]
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, order.ID, it.ItemID, it.ItemName, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe en el tenant.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, tenant_id, supplier_id, status, total_amount, converted_purchase_id, created_by, created_at, updated_at
		FROM purchase_orders WHERE tenant_id = $1 AND id = $2`
	var po entity.PurchaseOrder
	var supplierID *string
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&po.ID, &po.TenantID, &supplierID, &po.Status, &po.TotalAmount,
		&po.ConvertedPurchaseID, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.SupplierID = deref(supplierID)

	itemQuery := `
		SELECT id, purchase_order_id, item_id, item_name, quantity, price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, po.ID)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ItemID, &it.ItemName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &po, nil
}

// List lista cabeceras de orden del tenant con paginación (sin líneas).
func (r *PurchaseOrderRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.PurchaseOrder, error) {
	query := `
		SELECT id, tenant_id, supplier_id, status, total_amount, converted_purchase_id, created_by, created_at, updated_at
		FROM purchase_orders WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		var supplierID *string
		if err := rows.Scan(&po.ID, &po.TenantID, &supplierID, &po.Status, &po.TotalAmount,
			&po.ConvertedPurchaseID, &po.CreatedBy, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		po.SupplierID = deref(supplierID)
		list = append(list, po)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el cambio de estado. La condición sobre
// converted_purchase_id cierra la carrera con una recepción concurrente:
// una orden ya recibida conserva RECEIVED.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	query := `
		UPDATE purchase_orders SET status = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND converted_purchase_id IS NULL`
	tag, err := r.q.Exec(ctx, query, tenantID, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflictf("la orden no existe o ya fue recibida")
	}
	return nil
}

// Delete borra líneas y cabecera.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("orden de compra no encontrada")
	}
	return nil
}

// MarkReceived gana la puerta de recepción en una sola escritura
// condicional: solo desde DRAFT o SENT y sin conversión previa. Cero
// filas afectadas significa orden ya recibida o cancelada.
func (r *PurchaseOrderRepo) MarkReceived(ctx context.Context, tenantID, id, purchaseID string) error {
	query := `
		UPDATE purchase_orders SET status = $4, converted_purchase_id = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		  AND converted_purchase_id IS NULL
		  AND status IN ($5, $6)`
	tag, err := r.q.Exec(ctx, query, tenantID, id, purchaseID,
		entity.PurchaseOrderStatusReceived, entity.PurchaseOrderStatusDraft, entity.PurchaseOrderStatusSent)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflictf("la orden ya fue recibida o su estado no lo permite")
	}
	return nil
}
