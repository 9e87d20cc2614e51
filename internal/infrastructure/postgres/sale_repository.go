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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, customer_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, nullify(sale.CustomerID), sale.TotalAmount, sale.PaidAmount,
		sale.PaymentType, sale.CreatedBy, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return r.insertItems(ctx, sale.ID, sale.Items)
}

func (r *SaleRepo) insertItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range items {
		it := items[i]
		if _, err := r.q.Exec(ctx, query, it.ID, saleID, it.ItemID, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas, o nil si no existe en el tenant.
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	query := `
		SELECT id, tenant_id, customer_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at
		FROM sales WHERE tenant_id = $1 AND id = $2`
	var s entity.Sale
	var customerID *string
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&s.ID, &s.TenantID, &customerID, &s.TotalAmount, &s.PaidAmount,
		&s.PaymentType, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CustomerID = deref(customerID)
	items, err := r.loadItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, item_id, quantity, price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	var items []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List lista cabeceras de venta del tenant con paginación (sin líneas).
func (r *SaleRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Sale, error) {
	query := `
		SELECT id, tenant_id, customer_id, total_amount, paid_amount, payment_type, created_by, created_at, updated_at
		FROM sales WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(&s.ID, &s.TenantID, &customerID, &s.TotalAmount, &s.PaidAmount,
			&s.PaymentType, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CustomerID = deref(customerID)
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateHeader persiste los campos de cabecera (totales, cliente, tipo de pago).
func (r *SaleRepo) UpdateHeader(ctx context.Context, sale *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $3, total_amount = $4, paid_amount = $5, payment_type = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		sale.TenantID, sale.ID, nullify(sale.CustomerID), sale.TotalAmount, sale.PaidAmount,
		sale.PaymentType, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale header: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("venta no encontrada")
	}
	return nil
}

// ReplaceItems borra las líneas actuales e inserta las nuevas.
func (r *SaleRepo) ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	return r.insertItems(ctx, saleID, items)
}

// Delete borra líneas y cabecera (void).
func (r *SaleRepo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("venta no encontrada")
	}
	return nil
}
