package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// QuotationRepository persiste cotizaciones y gobierna su puerta de
// idempotencia de conversión.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Quotation, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]entity.Quotation, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
	Delete(ctx context.Context, tenantID, id string) error

	// MarkConverted fuerza status=ACCEPTED y fija converted_sale_id en una
	// sola escritura condicional: solo si converted_sale_id es NULL y el
	// estado no es terminal (REJECTED/EXPIRED). Cero filas afectadas =
	// Conflict (ya convertida o en estado terminal). Dos conversiones
	// concurrentes nunca pueden pasar ambas esta puerta.
	MarkConverted(ctx context.Context, tenantID, id, saleID string) error
}
