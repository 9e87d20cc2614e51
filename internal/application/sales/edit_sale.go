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

// EditSale reemplaza por completo una venta: líneas nuevas, cliente
// posiblemente distinto, totales recalculados. La disponibilidad se evalúa
// como stock_actual + cantidad_vieja_del_ítem >= cantidad_nueva, lo que
// cubre ítems que cambian de cantidad, se quitan o se agregan. Todas las
// reversas y aplicaciones confirman en una sola transacción.
func (uc *SalesUseCase) EditSale(ctx context.Context, id authz.Identity, saleID string, in dto.EditSaleRequest) (*dto.SaleResponse, error) {
	if err := authz.Require(id, permission.ActionEditSales); err != nil {
		return nil, err
	}
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if !validPaymentType(in.PaymentType) {
		return nil, domain.Validationf("payment_type debe ser CASH o CREDIT")
	}

	old, err := uc.saleRepo.GetByID(ctx, id.TenantID, saleID)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, domain.NotFoundf("venta no encontrada")
	}
	oldCredit := old.Credit()
	oldQty := aggregateQuantities(old.Items)

	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.NotFoundf("cliente no encontrado")
		}
	}

	// Construir las líneas nuevas con snapshot de precio.
	now := time.Now()
	updated := &entity.Sale{
		ID:          old.ID,
		TenantID:    old.TenantID,
		CustomerID:  in.CustomerID,
		PaymentType: in.PaymentType,
		CreatedBy:   old.CreatedBy,
		CreatedAt:   old.CreatedAt,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, l := range in.Items {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem no encontrado")
		}
		price := l.Price
		if price.IsZero() {
			price = item.SellingPrice
		}
		line := entity.SaleItem{
			ID:       uuid.New().String(),
			SaleID:   old.ID,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    price,
		}
		updated.Items = append(updated.Items, line)
		total = total.Add(line.Subtotal())
	}
	updated.TotalAmount = total
	updated.PaidAmount = clampPaid(in.PaidAmount, total)
	newCredit := updated.Credit()
	if newCredit.IsPositive() && updated.CustomerID == "" {
		return nil, domain.Validationf("una venta a crédito requiere cliente")
	}

	// Chequeo de disponibilidad consciente de la restauración, antes de
	// escribir nada: disponible = stock_actual + cantidad_vieja (si el ítem
	// estaba en el conjunto viejo).
	for itemID, qty := range aggregateQuantities(updated.Items) {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem no encontrado")
		}
		available := item.Quantity + oldQty[itemID]
		if available < qty {
			return nil, domain.InsufficientStock(itemID, available, qty)
		}
	}

	err = uc.txRunner.RunSales(ctx, func(
		saleRepo repository.SaleRepository,
		itemRepo repository.ItemRepository,
		customerRepo repository.CustomerRepository,
		_ repository.QuotationRepository,
	) error {
		// 1) Restaurar el stock de todas las líneas viejas.
		for itemID, qty := range oldQty {
			if err := itemRepo.Increment(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		// 2) Revertir el crédito viejo del cliente original.
		if oldCredit.IsPositive() && old.CustomerID != "" {
			if err := customerRepo.SubBalance(ctx, id.TenantID, old.CustomerID, oldCredit); err != nil {
				return err
			}
		}
		// 3) Reemplazar líneas y descontar stock de las nuevas.
		if err := saleRepo.ReplaceItems(ctx, old.ID, updated.Items); err != nil {
			return err
		}
		for itemID, qty := range aggregateQuantities(updated.Items) {
			if err := itemRepo.Decrement(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		// 4) Aplicar el crédito nuevo al cliente (posiblemente otro).
		if newCredit.IsPositive() {
			if err := customerRepo.AddBalance(ctx, id.TenantID, updated.CustomerID, newCredit); err != nil {
				return err
			}
		}
		// 5) Actualizar la cabecera.
		return saleRepo.UpdateHeader(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionUpdate,
		Entity:      "sale",
		EntityID:    updated.ID,
	})
	return toSaleResponse(updated), nil
}
