package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// StockAdjustmentRepository persiste los ajustes manuales de stock.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.StockAdjustment) error
	ListByItem(ctx context.Context, tenantID, itemID string, limit, offset int) ([]entity.StockAdjustment, error)
}
