package sales

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// SalesUseCase es el motor de transacciones de venta: crear, editar, anular
// y convertir cotizaciones. Cada operación valida antes de escribir y aplica
// todas sus escrituras dentro de una sola transacción.
type SalesUseCase struct {
	txRunner      TxRunner
	saleRepo      repository.SaleRepository
	itemRepo      repository.ItemRepository
	customerRepo  repository.CustomerRepository
	quotationRepo repository.QuotationRepository
	recorder      audit.Recorder
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	quotationRepo repository.QuotationRepository,
	recorder audit.Recorder,
) *SalesUseCase {
	return &SalesUseCase{
		txRunner:      txRunner,
		saleRepo:      saleRepo,
		itemRepo:      itemRepo,
		customerRepo:  customerRepo,
		quotationRepo: quotationRepo,
		recorder:      recorder,
	}
}

// validPaymentType reporta si el tipo de pago pertenece al enum.
func validPaymentType(s string) bool {
	return s == entity.PaymentTypeCash || s == entity.PaymentTypeCredit
}

// aggregateQuantities suma cantidades por ítem (una venta puede repetir el
// mismo ítem en varias líneas).
func aggregateQuantities(items []entity.SaleItem) map[string]int64 {
	agg := make(map[string]int64, len(items))
	for _, it := range items {
		agg[it.ItemID] += it.Quantity
	}
	return agg
}

// validateLines valida la forma de las líneas: al menos una, cantidades
// positivas, precios no negativos.
func validateLines(lines []dto.SaleLineRequest) error {
	if len(lines) == 0 {
		return domain.Validationf("la venta requiere al menos una línea")
	}
	for _, l := range lines {
		if l.ItemID == "" {
			return domain.Validationf("item_id requerido en cada línea")
		}
		if l.Quantity <= 0 {
			return domain.Validationf("la cantidad debe ser positiva")
		}
		if l.Price.IsNegative() {
			return domain.Validationf("el precio no puede ser negativo")
		}
	}
	return nil
}

// clampPaid garantiza paid en [0, total]: pagos por encima del total se
// recortan al total (no existe crédito negativo).
func clampPaid(paid, total decimal.Decimal) decimal.Decimal {
	if paid.IsNegative() {
		return decimal.Zero
	}
	if paid.GreaterThan(total) {
		return total
	}
	return paid
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		TotalAmount: s.TotalAmount,
		PaidAmount:  s.PaidAmount,
		Credit:      s.Credit(),
		PaymentType: s.PaymentType,
		CreatedAt:   s.CreatedAt,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleLineResponse{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
			Subtotal: it.Subtotal(),
		})
	}
	return resp
}
