package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas.
type SaleRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas, o nil si no existe en el tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Sale, error)
	// UpdateHeader persiste los campos de cabecera (totales, cliente, tipo de pago).
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	// ReplaceItems borra las líneas actuales e inserta las nuevas.
	ReplaceItems(ctx context.Context, saleID string, items []entity.SaleItem) error
	// Delete borra líneas y cabecera (void).
	Delete(ctx context.Context, tenantID, id string) error
}
