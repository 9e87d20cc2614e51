package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

// StockAdjustmentRepo implementación de StockAdjustmentRepository (usable con pool o tx).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create persiste un ajuste manual de stock.
func (r *StockAdjustmentRepo) Create(ctx context.Context, adjustment *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, tenant_id, item_id, type, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		adjustment.ID, adjustment.TenantID, adjustment.ItemID, adjustment.Type,
		adjustment.Quantity, adjustment.Reason, adjustment.CreatedBy, adjustment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// ListByItem lista los ajustes de un ítem con paginación.
func (r *StockAdjustmentRepo) ListByItem(ctx context.Context, tenantID, itemID string, limit, offset int) ([]entity.StockAdjustment, error) {
	query := `
		SELECT id, tenant_id, item_id, type, quantity, reason, created_by, created_at
		FROM stock_adjustments WHERE tenant_id = $1 AND item_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	var list []entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.TenantID, &a.ItemID, &a.Type, &a.Quantity, &a.Reason, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
