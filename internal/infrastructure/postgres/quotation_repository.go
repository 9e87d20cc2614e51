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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
// La puerta de conversión es una escritura condicional sobre
// converted_sale_id: solo un convertidor puede ganarla.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste cabecera y líneas snapshot.
func (r *QuotationRepo) Create(ctx context.Context, quotation *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, tenant_id, customer_id, status, total_amount, converted_sale_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		quotation.ID, quotation.TenantID, nullify(quotation.CustomerID), quotation.Status,
		quotation.TotalAmount, quotation.ConvertedSaleID, quotation.CreatedBy,
		quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	itemQuery := `
		INSERT INTO quotation_items (id, quotation_id, item_id, item_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range quotation.Items {
		it := quotation.Items[i]
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, quotation.ID, it.ItemID, it.ItemName, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("insert quotation item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la cotización con sus líneas, o nil si no existe en el tenant.
func (r *QuotationRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Quotation, error) {
	query := `
		SELECT id, tenant_id, customer_id, status, total_amount, converted_sale_id, created_by, created_at, updated_at
		FROM quotations WHERE tenant_id = $1 AND id = $2`
	var qt entity.Quotation
	var customerID *string
	err := r.q.QueryRow(ctx, query, tenantID, id).Scan(
		&qt.ID, &qt.TenantID, &customerID, &qt.Status, &qt.TotalAmount,
		&qt.ConvertedSaleID, &qt.CreatedBy, &qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	qt.CustomerID = deref(customerID)

	itemQuery := `
		SELECT id, quotation_id, item_id, item_name, quantity, price
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, itemQuery, qt.ID)
	if err != nil {
		return nil, fmt.Errorf("load quotation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(&it.ID, &it.QuotationID, &it.ItemID, &it.ItemName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		qt.Items = append(qt.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &qt, nil
}

// List lista cabeceras de cotización del tenant con paginación (sin líneas).
func (r *QuotationRepo) List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Quotation, error) {
	query := `
		SELECT id, tenant_id, customer_id, status, total_amount, converted_sale_id, created_by, created_at, updated_at
		FROM quotations WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []entity.Quotation
	for rows.Next() {
		var qt entity.Quotation
		var customerID *string
		if err := rows.Scan(&qt.ID, &qt.TenantID, &customerID, &qt.Status, &qt.TotalAmount,
			&qt.ConvertedSaleID, &qt.CreatedBy, &qt.CreatedAt, &qt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		qt.CustomerID = deref(customerID)
		list = append(list, qt)
	}
	return list, rows.Err()
}

// UpdateStatus persiste el cambio de estado. La condición sobre
// converted_sale_id cierra la carrera con una conversión concurrente: una
// cotización ya convertida conserva ACCEPTED pase lo que pase.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	query := `
		UPDATE quotations SET status = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND converted_sale_id IS NULL`
	tag, err := r.q.Exec(ctx, query, tenantID, id, status)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflictf("la cotización no existe o ya fue convertida")
	}
	return nil
}

// Delete borra líneas y cabecera.
func (r *QuotationRepo) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, id); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("cotización no encontrada")
	}
	return nil
}

// MarkConverted gana la puerta de conversión en una sola escritura
// condicional: solo si converted_sale_id sigue en NULL y el estado no es
// terminal. Cero filas afectadas significa que otro convertidor ganó o
// que el estado lo impide.
func (r *QuotationRepo) MarkConverted(ctx context.Context, tenantID, id, saleID string) error {
	query := `
		UPDATE quotations SET status = $4, converted_sale_id = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
		  AND converted_sale_id IS NULL
		  AND status NOT IN ($5, $6)`
	tag, err := r.q.Exec(ctx, query, tenantID, id, saleID,
		entity.QuotationStatusAccepted, entity.QuotationStatusRejected, entity.QuotationStatusExpired)
	if err != nil {
		return fmt.Errorf("mark quotation converted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflictf("la cotización ya fue convertida o su estado no lo permite")
	}
	return nil
}
