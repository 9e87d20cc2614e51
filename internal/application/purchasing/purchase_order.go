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

// CreatePurchaseOrder crea una orden de compra en DRAFT. El borrador no
// mueve stock ni saldos; solo la recepción (conversión) lo hace.
func (uc *PurchasingUseCase) CreatePurchaseOrder(ctx context.Context, id authz.Identity, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := authz.Require(id, permission.ActionCreatePurchaseOrder); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Validationf("la orden requiere al menos una línea")
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(ctx, id.TenantID, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.NotFoundf("proveedor no encontrado")
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		TenantID:   id.TenantID,
		SupplierID: in.SupplierID,
		Status:     entity.PurchaseOrderStatusDraft,
		CreatedBy:  id.PrincipalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	total := decimal.Zero
	for _, l := range in.Items {
		if l.Quantity <= 0 {
			return nil, domain.Validationf("la cantidad debe ser positiva")
		}
		if l.Price.IsNegative() {
			return nil, domain.Validationf("el costo no puede ser negativo")
		}
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NotFoundf("ítem no encontrado")
		}
		price := l.Price
		if price.IsZero() {
			price = item.CostPrice
		}
		line := entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ItemID:          l.ItemID,
			ItemName:        item.Name,
			Quantity:        l.Quantity,
			Price:           price,
		}
		order.Items = append(order.Items, line)
		total = total.Add(line.Subtotal())
	}
	order.TotalAmount = total

	err := uc.txRunner.RunDocuments(ctx, func(
		_ repository.QuotationRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionCreate,
		Entity:      "purchase_order",
		EntityID:    order.ID,
	})
	return toPurchaseOrderResponse(order), nil
}

// UpdatePurchaseOrderStatus mueve la orden entre DRAFT/SENT o la cancela.
// RECEIVED no es alcanzable por esta vía: solo la conversión lo fija.
// Estados terminales (RECEIVED/CANCELLED) no admiten más cambios.
func (uc *PurchasingUseCase) UpdatePurchaseOrderStatus(ctx context.Context, id authz.Identity, orderID string, in dto.UpdatePurchaseOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	if err := authz.Require(id, permission.ActionManagePurchaseOrder); err != nil {
		return nil, err
	}
	if !entity.ValidPurchaseOrderStatus(in.Status) {
		return nil, domain.Validationf("estado desconocido: %s", in.Status)
	}
	if in.Status == entity.PurchaseOrderStatusReceived {
		return nil, domain.Validationf("RECEIVED solo se alcanza recibiendo la orden (conversión)")
	}

	order, err := uc.orderRepo.GetByID(ctx, id.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundf("orden no encontrada")
	}
	if !order.Convertible() { // RECEIVED o CANCELLED: terminal
		return nil, domain.Conflictf("la orden está en estado terminal (%s)", order.Status)
	}

	if err := uc.orderRepo.UpdateStatus(ctx, id.TenantID, order.ID, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	order.UpdatedAt = time.Now()
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionStatusChange,
		Entity:      "purchase_order",
		EntityID:    order.ID,
		Detail:      "status=" + in.Status,
	})
	return toPurchaseOrderResponse(order), nil
}

// DeletePurchaseOrder borra una orden. Solo se permite en DRAFT; una orden
// enviada, recibida o cancelada es registro histórico.
func (uc *PurchasingUseCase) DeletePurchaseOrder(ctx context.Context, id authz.Identity, orderID string) error {
	if err := authz.Require(id, permission.ActionManagePurchaseOrder); err != nil {
		return err
	}
	order, err := uc.orderRepo.GetByID(ctx, id.TenantID, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.NotFoundf("orden no encontrada")
	}
	if order.Status != entity.PurchaseOrderStatusDraft {
		return domain.Conflictf("solo las órdenes en DRAFT pueden borrarse")
	}
	// Líneas y cabecera se borran juntas o no se borra nada.
	err = uc.txRunner.RunDocuments(ctx, func(
		_ repository.QuotationRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		return orderRepo.Delete(ctx, id.TenantID, order.ID)
	})
	if err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionDelete,
		Entity:      "purchase_order",
		EntityID:    order.ID,
	})
	return nil
}

// GetPurchaseOrder devuelve una orden del tenant.
func (uc *PurchasingUseCase) GetPurchaseOrder(ctx context.Context, id authz.Identity, orderID string) (*dto.PurchaseOrderResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	order, err := uc.orderRepo.GetByID(ctx, id.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundf("orden no encontrada")
	}
	return toPurchaseOrderResponse(order), nil
}

// ListPurchaseOrders lista órdenes del tenant.
func (uc *PurchasingUseCase) ListPurchaseOrders(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *toPurchaseOrderResponse(&orders[i]))
	}
	return out, nil
}
