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

// CreatePurchase crea una compra: en una sola transacción persiste
// cabecera+líneas, incrementa el stock de cada ítem, refresca su costo con
// el de la línea y suma el crédito al saldo del proveedor si aplica.
// Las compras no tienen precondición de stock: recibir siempre suma.
func (uc *PurchasingUseCase) CreatePurchase(ctx context.Context, id authz.Identity, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := authz.Require(id, permission.ActionCreatePurchases); err != nil {
		return nil, err
	}
	if err := validatePurchaseLines(in.Items); err != nil {
		return nil, err
	}
	if !validPaymentType(in.PaymentType) {
		return nil, domain.Validationf("payment_type debe ser CASH o CREDIT")
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
	purchase := &entity.Purchase{
		ID:          uuid.New().String(),
		TenantID:    id.TenantID,
		SupplierID:  in.SupplierID,
		PaymentType: in.PaymentType,
		CreatedBy:   id.PrincipalID,
		CreatedAt:   now,
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
		line := entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ItemID:     l.ItemID,
			Quantity:   l.Quantity,
			Price:      l.Price,
		}
		purchase.Items = append(purchase.Items, line)
		total = total.Add(line.Subtotal())
	}
	purchase.TotalAmount = total
	purchase.PaidAmount = clampPaid(in.PaidAmount, total)
	credit := purchase.Credit()

	// El crédito de compra vive en el saldo de un proveedor.
	if credit.IsPositive() && purchase.SupplierID == "" {
		return nil, domain.Validationf("una compra a crédito requiere proveedor")
	}

	err := uc.txRunner.RunPurchasing(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		itemRepo repository.ItemRepository,
		supplierRepo repository.SupplierRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, line := range purchase.Items {
			if err := itemRepo.Increment(ctx, id.TenantID, line.ItemID, line.Quantity); err != nil {
				return err
			}
			// Refrescar el costo del ítem con el costo de recepción.
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
		Action:      audit.ActionCreate,
		Entity:      "purchase",
		EntityID:    purchase.ID,
	})
	return toPurchaseResponse(purchase), nil
}

// VoidPurchase anula una compra: revierte el stock de cada línea (ahora un
// decremento, con precondición condicional), revierte el saldo del proveedor
// y borra líneas y cabecera, en una transacción. Solo Owner.
func (uc *PurchasingUseCase) VoidPurchase(ctx context.Context, id authz.Identity, purchaseID string) error {
	if err := authz.Require(id, permission.ActionVoidPurchases); err != nil {
		return err
	}

	purchase, err := uc.purchaseRepo.GetByID(ctx, id.TenantID, purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.NotFoundf("compra no encontrada")
	}
	credit := purchase.Credit()

	// Pre-chequeo: revertir la compra exige que el stock recibido siga ahí.
	for itemID, qty := range aggregatePurchaseQuantities(purchase.Items) {
		item, err := uc.itemRepo.GetByID(ctx, id.TenantID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFoundf("ítem no encontrado")
		}
		if item.Quantity < qty {
			return domain.InsufficientStock(itemID, item.Quantity, qty)
		}
	}

	err = uc.txRunner.RunPurchasing(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		itemRepo repository.ItemRepository,
		supplierRepo repository.SupplierRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		for itemID, qty := range aggregatePurchaseQuantities(purchase.Items) {
			if err := itemRepo.Decrement(ctx, id.TenantID, itemID, qty); err != nil {
				return err
			}
		}
		// Revertir lo que la compra le había sumado a la deuda con el proveedor.
		if credit.IsPositive() && purchase.SupplierID != "" {
			if err := supplierRepo.SubBalance(ctx, id.TenantID, purchase.SupplierID, credit); err != nil {
				return err
			}
		}
		return purchaseRepo.Delete(ctx, id.TenantID, purchase.ID)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionVoid,
		Entity:      "purchase",
		EntityID:    purchase.ID,
	})
	return nil
}

// GetPurchase devuelve una compra del tenant con sus líneas.
func (uc *PurchasingUseCase) GetPurchase(ctx context.Context, id authz.Identity, purchaseID string) (*dto.PurchaseResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	purchase, err := uc.purchaseRepo.GetByID(ctx, id.TenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.NotFoundf("compra no encontrada")
	}
	return toPurchaseResponse(purchase), nil
}

// ListPurchases lista compras del tenant.
func (uc *PurchasingUseCase) ListPurchases(ctx context.Context, id authz.Identity, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	if id.TenantID == "" {
		return nil, domain.ErrNoTenant
	}
	page.DefaultPage()
	purchases, err := uc.purchaseRepo.List(ctx, id.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, *toPurchaseResponse(&purchases[i]))
	}
	return out, nil
}
