package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// ConvertQuotation convierte una cotización en venta, exactamente una vez.
// Los precios vienen del snapshot congelado de la cotización; la suficiencia
// de stock se re-verifica contra las cantidades vivas de los ítems. La puerta
// de idempotencia es MarkConverted: una escritura condicional que fuerza
// ACCEPTED y fija converted_sale_id solo si la cotización seguía convertible;
// la segunda conversión concurrente observa Conflict, nunca una venta doble.
func (uc *SalesUseCase) ConvertQuotation(ctx context.Context, id authz.Identity, quotationID string, in dto.ConvertQuotationRequest) (*dto.SaleResponse, error) {
	if err := authz.Require(id, permission.ActionConvertQuotation); err != nil {
		return nil, err
	}
	if !validPaymentType(in.PaymentType) {
		return nil, domain.Validationf("payment_type debe ser CASH o CREDIT")
	}

	quote, err := uc.quotationRepo.GetByID(ctx, id.TenantID, quotationID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.NotFoundf("cotización no encontrada")
	}
	if !quote.Convertible() {
		return nil, domain.Conflictf("la cotización no es convertible en su estado actual (%s)", quote.Status)
	}
	if len(quote.Items) == 0 {
		return nil, domain.Validationf("la cotización no tiene líneas")
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		TenantID:    id.TenantID,
		CustomerID:  quote.CustomerID,
		PaymentType: in.PaymentType,
		CreatedBy:   id.PrincipalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	agg := make(map[string]int64, len(quote.Items))
	for _, ql := range quote.Items {
		line := entity.SaleItem{
			ID:       uuid.New().String(),
			SaleID:   sale.ID,
			ItemID:   ql.ItemID,
			Quantity: ql.Quantity,
			Price:    ql.Price, // snapshot congelado, no el precio vivo
		}
		sale.Items = append(sale.Items, line)
		total = total.Add(line.Subtotal())
		agg[ql.ItemID] += ql.Quantity
	}
	sale.TotalAmount = total
	sale.PaidAmount = clampPaid(in.PaidAmount, total)
	credit := sale.Credit()
	if credit.IsPositive() && sale.CustomerID == "" {
		return nil, domain.Validationf("la conversión a crédito requiere cliente en la cotización")
	}

	// Re-chequear suficiencia contra el stock vivo (no el snapshot): si
	// cualquier línea queda corta, toda la conversión falla sin escribir.
	for itemID, qty := range agg {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem de la cotización ya no existe")
		}
		if item.Quantity < qty {
			return nil, domain.InsufficientStock(itemID, item.Quantity, qty)
		}
	}

	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
		customerRepo repository.CustomerRepository,
		quotationRepo repository.QuotationRepository,
	) error {
		// La puerta va primero: si otra conversión ganó, Conflict y rollback
		// sin haber tocado stock ni saldos.
		if err := quotationRepo.MarkConverted(ctx, id.TenantID, quote.ID, sale.ID); err != nil {
			return err
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for itemID, qty := range agg {
			if err := itemRepo.Decrement(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		if credit.IsPositive() {
			if err := customerRepo.AddBalance(ctx, id.TenantID, sale.CustomerID, credit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionConvert,
		Entity:      "quotation",
		EntityID:    quote.ID,
		Detail:      "sale_id=" + sale.ID,
	})
	return toSaleResponse(sale), nil
}
