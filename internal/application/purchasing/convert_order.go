package purchasing

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

// ConvertPurchaseOrder recibe una orden de compra: la convierte en Purchase
// exactamente una vez. No hay precondición de stock (recibir siempre suma);
// la puerta de idempotencia es MarkReceived, una escritura condicional que
// solo pasa desde DRAFT o SENT. Requiere proveedor asociado: el crédito de
// la recepción necesita un saldo donde vivir.
func (uc *PurchasingUseCase) ConvertPurchaseOrder(ctx context.Context, id authz.Identity, orderID string, in dto.ConvertPurchaseOrderRequest) (*dto.PurchaseResponse, error) {
	if err := authz.Require(id, permission.ActionConvertPurchaseOrder); err != nil {
		return nil, err
	}
	if !validPaymentType(in.PaymentType) {
		return nil, domain.Validationf("payment_type debe ser CASH o CREDIT")
	}

	order, err := uc.orderRepo.GetByID(ctx, id.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundf("orden no encontrada")
	}
	if !order.Convertible() {
		return nil, domain.Conflictf("la orden no es convertible en su estado actual (%s)", order.Status)
	}
	if order.SupplierID == "" {
		return nil, domain.Validationf("la orden no tiene proveedor asociado")
	}
	if len(order.Items) == 0 {
		return nil, domain.Validationf("la orden no tiene líneas")
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		TenantID:    id.TenantID,
		SupplierID:  order.SupplierID,
		PaymentType: in.PaymentType,
		CreatedBy:   id.PrincipalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, ol := range order.Items {
		line := entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ItemID:     ol.ItemID,
			Quantity:   ol.Quantity,
			Price:      ol.Price,
		}
		purchase.Items = append(purchase.Items, line)
		total = total.Add(line.Subtotal())
	}
	purchase.TotalAmount = total
	purchase.PaidAmount = clampPaid(in.PaidAmount, total)
	credit := purchase.Credit()

	err = uc.txRunner.RunPurchasing(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		itemRepo repository.ItemRepository,
		supplierRepo repository.SupplierRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		// La puerta primero: dos recepciones concurrentes de la misma orden
		// no pueden pasar ambas.
		if err := orderRepo.MarkReceived(ctx, id.TenantID, order.ID, purchase.ID); err != nil {
			return err
		}
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, line := range purchase.Items {
			if err := itemRepo.Increment(ctx, id.TenantID, line.ItemID, line.Quantity); err != nil {
				return err
			}
			if err := itemRepo.UpdateCostPrice(ctx, id.TenantID, line.ItemID, line.Price); err != nil {
				return err
			}
		}
		if credit.IsPositive() {
			if err := supplierRepo.AddBalance(ctx, id.TenantID, purchase.SupplierID, credit); err != nil {
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
		Entity:      "purchase_order",
		EntityID:    order.ID,
		Detail:      "purchase_id=" + purchase.ID,
	})
	return toPurchaseResponse(purchase), nil
}
