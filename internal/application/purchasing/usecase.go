package purchasing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// PurchasingUseCase es el motor de compras: crear y anular compras, y el
// ciclo de vida de órdenes de compra incluida su recepción (conversión).
type PurchasingUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
	orderRepo    repository.PurchaseOrderRepository
	recorder     audit.Recorder
}

// NewPurchasingUseCase construye el caso de uso.
func NewPurchasingUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	orderRepo repository.PurchaseOrderRepository,
	recorder audit.Recorder,
) *PurchasingUseCase {
	return &PurchasingUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		recorder:     recorder,
	}
}

func validPaymentType(s string) bool {
	return s == entity.PaymentTypeCash || s == entity.PaymentTypeCredit
}

func clampPaid(paid, total decimal.Decimal) decimal.Decimal {
	if paid.IsNegative() {
		return decimal.Zero
	}
	if paid.GreaterThan(total) {
		return total
	}
	return paid
}

func validatePurchaseLines(lines []dto.PurchaseLineRequest) error {
	if len(lines) == 0 {
		return domain.Validationf("la compra requiere al menos una línea")
	}
	for _, l := range lines {
		if l.ItemID == "" {
			return domain.Validationf("item_id requerido en cada línea")
		}
		if l.Quantity <= 0 {
			return domain.Validationf("la cantidad debe ser positiva")
		}
		if l.Price.IsNegative() {
			return domain.Validationf("el costo no puede ser negativo")
		}
	}
	return nil
}

func aggregatePurchaseQuantities(items []entity.PurchaseItem) map[string]int64 {
	agg := make(map[string]int64, len(items))
	for _, it := range items {
		agg[it.ItemID] += it.Quantity
	}
	return agg
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		TotalAmount: p.TotalAmount,
		PaidAmount:  p.PaidAmount,
		Credit:      p.Credit(),
		PaymentType: p.PaymentType,
		CreatedAt:   p.CreatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseLineResponse{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal(),
		})
	}
	return resp
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:          po.ID,
		SupplierID:  po.SupplierID,
		Status:      po.Status,
		TotalAmount: po.TotalAmount,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
	if po.ConvertedPurchaseID != nil {
		resp.ConvertedPurchaseID = *po.ConvertedPurchaseID
	}
	for _, it := range po.Items {
		resp.Items = append(resp.Items, dto.PurchaseOrderLineResponse{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal(),
		})
	}
	return resp
}
