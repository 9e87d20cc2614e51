package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/notify"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función con los repositorios de pagos y saldos
// atados a una transacción: el registro del pago y el decremento del saldo
// confirman juntos o ninguno.
type TxRunner interface {
	RunPayments(ctx context.Context, fn func(
		customerPaymentRepo repository.CustomerPaymentRepository,
		supplierPaymentRepo repository.SupplierPaymentRepository,
		customerRepo repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// PaymentsUseCase registra abonos de clientes y pagos a proveedores, y
// aplica los overrides administrativos de saldo absoluto.
type PaymentsUseCase struct {
	txRunner            TxRunner
	customerRepo        repository.CustomerRepository
	supplierRepo        repository.SupplierRepository
	customerPaymentRepo repository.CustomerPaymentRepository
	supplierPaymentRepo repository.SupplierPaymentRepository
	recorder            audit.Recorder
	notifier            notify.Notifier
}

// NewPaymentsUseCase construye el caso de uso.
func NewPaymentsUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	customerPaymentRepo repository.CustomerPaymentRepository,
	supplierPaymentRepo repository.SupplierPaymentRepository,
	recorder audit.Recorder,
	notifier notify.Notifier,
) *PaymentsUseCase {
	return &PaymentsUseCase{
		txRunner:            txRunner,
		customerRepo:        customerRepo,
		supplierRepo:        supplierRepo,
		customerPaymentRepo: customerPaymentRepo,
		supplierPaymentRepo: supplierPaymentRepo,
		recorder:            recorder,
		notifier:            notifier,
	}
}

func validPaymentMethod(s string) bool {
	switch s {
	case entity.PaymentMethodCash, entity.PaymentMethodTransfer, entity.PaymentMethodCard:
		return true
	}
	return false
}

// RecordCustomerPayment registra un abono: valida monto positivo y que no
// exceda el saldo, y en una transacción crea el pago y decrementa la deuda.
// Nunca toca stock.
func (uc *PaymentsUseCase) RecordCustomerPayment(ctx context.Context, id authz.Identity, customerID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := authz.Require(id, permission.ActionRecordPayments); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validationf("el monto debe ser positivo")
	}
	if !validPaymentMethod(in.Method) {
		return nil, domain.Validationf("método de pago desconocido: %s", in.Method)
	}

	customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente no encontrado")
	}
	// Rechazo tipado antes de escribir; el SubBalance condicional dentro de
	// la tx sigue siendo la verificación autoritativa bajo concurrencia.
	if in.Amount.GreaterThan(customer.Balance) {
		return nil, domain.InsufficientBalance(customer.Balance.String(), in.Amount.String())
	}

	payment := &entity.CustomerPayment{
		ID:         uuid.New().String(),
		TenantID:   id.TenantID,
		CustomerID: customerID,
		Amount:     in.Amount,
		Method:     in.Method,
		Notes:      in.Notes,
		CreatedBy:  id.PrincipalID,
		CreatedAt:  time.Now(),
	}
	err = uc.txRunner.RunPayments(ctx, func(
		customerPaymentRepo repository.CustomerPaymentRepository,
		_ repository.SupplierPaymentRepository,
		customerRepo repository.CustomerRepository,
		_ repository.SupplierRepository,
	) error {
		if err := customerPaymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return customerRepo.SubBalance(ctx, id.TenantID, customerID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	newBalance := customer.Balance.Sub(in.Amount)
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionRecordPayment,
		Entity:      "customer_payment",
		EntityID:    payment.ID,
	})
	// Notificación post-commit: su fallo no afecta el estado confirmado.
	uc.notifier.PaymentRecorded(ctx, id.TenantID, customerID, in.Amount, newBalance)

	return &dto.PaymentResponse{
		ID:             payment.ID,
		CounterpartyID: customerID,
		Amount:         payment.Amount,
		Method:         payment.Method,
		NewBalance:     newBalance,
		CreatedAt:      payment.CreatedAt,
	}, nil
}

// RecordSupplierPayment registra un pago a proveedor. Mecánica idéntica al
// abono de cliente con sentido real opuesto.
func (uc *PaymentsUseCase) RecordSupplierPayment(ctx context.Context, id authz.Identity, supplierID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := authz.Require(id, permission.ActionRecordPayments); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Validationf("el monto debe ser positivo")
	}
	if !validPaymentMethod(in.Method) {
		return nil, domain.Validationf("método de pago desconocido: %s", in.Method)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, id.TenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor no encontrado")
	}
	if in.Amount.GreaterThan(supplier.Balance) {
		return nil, domain.InsufficientBalance(supplier.Balance.String(), in.Amount.String())
	}

	payment := &entity.SupplierPayment{
		ID:         uuid.New().String(),
		TenantID:   id.TenantID,
		SupplierID: supplierID,
		Amount:     in.Amount,
		Method:     in.Method,
		Notes:      in.Notes,
		CreatedBy:  id.PrincipalID,
		CreatedAt:  time.Now(),
	}
	err = uc.txRunner.RunPayments(ctx, func(
		_ repository.CustomerPaymentRepository,
		supplierPaymentRepo repository.SupplierPaymentRepository,
		_ repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		if err := supplierPaymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		return supplierRepo.SubBalance(ctx, id.TenantID, supplierID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	newBalance := supplier.Balance.Sub(in.Amount)
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionRecordPayment,
		Entity:      "supplier_payment",
		EntityID:    payment.ID,
	})
	uc.notifier.PaymentRecorded(ctx, id.TenantID, supplierID, in.Amount, newBalance)

	return &dto.PaymentResponse{
		ID:             payment.ID,
		CounterpartyID: supplierID,
		Amount:         payment.Amount,
		Method:         payment.Method,
		NewBalance:     newBalance,
		CreatedAt:      payment.CreatedAt,
	}, nil
}

// SetCustomerBalance fija el saldo absoluto de un cliente. Override
// administrativo: exige razón, rechaza negativos y se audita con acción
// propia, distinta del movimiento normal de ledger.
func (uc *PaymentsUseCase) SetCustomerBalance(ctx context.Context, id authz.Identity, customerID string, in dto.SetBalanceRequest) error {
	if err := authz.Require(id, permission.ActionSetBalances); err != nil {
		return err
	}
	if in.Reason == "" {
		return domain.Validationf("el override de saldo exige una razón")
	}
	if in.Balance.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.NotFoundf("cliente no encontrado")
	}
	if err := uc.customerRepo.SetBalance(ctx, id.TenantID, customerID, in.Balance); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionSetBalance,
		Entity:      "customer",
		EntityID:    customerID,
		Detail:      "reason=" + in.Reason,
	})
	return nil
}

// SetCustomerBalances fija saldos absolutos en lote, todos en una sola
// transacción: o se aplican todos los overrides o ninguno.
func (uc *PaymentsUseCase) SetCustomerBalances(ctx context.Context, id authz.Identity, in dto.SetBalancesRequest) error {
	if err := authz.Require(id, permission.ActionSetBalances); err != nil {
		return err
	}
	if in.Reason == "" {
		return domain.Validationf("el override de saldo exige una razón")
	}
	if len(in.Entries) == 0 {
		return domain.Validationf("el lote está vacío")
	}
	for _, e := range in.Entries {
		if e.Balance.IsNegative() {
			return domain.Validationf("el saldo no puede ser negativo (cliente %s)", e.CustomerID)
		}
		customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, e.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFoundf("cliente no encontrado")
		}
	}

	err := uc.txRunner.RunPayments(ctx, func(
		_ repository.CustomerPaymentRepository,
		_ repository.SupplierPaymentRepository,
		customerRepo repository.CustomerRepository,
		_ repository.SupplierRepository,
	) error {
		for _, e := range in.Entries {
			if err := customerRepo.SetBalance(ctx, id.TenantID, e.CustomerID, e.Balance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range in.Entries {
		uc.recorder.Record(ctx, audit.Entry{
			TenantID:    id.TenantID,
			PrincipalID: id.PrincipalID,
			Action:      audit.ActionSetBalance,
			Entity:      "customer",
			EntityID:    e.CustomerID,
			Detail:      "reason=" + in.Reason,
		})
	}
	return nil
}

// ListCustomerPayments devuelve el historial de abonos de un cliente.
func (uc *PaymentsUseCase) ListCustomerPayments(ctx context.Context, id authz.Identity, customerID string, limit, offset int) ([]dto.PaymentHistoryItem, error) {
	if err := authz.Require(id, permission.ActionRecordPayments); err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, id.TenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFoundf("cliente no encontrado")
	}
	rows, err := uc.customerPaymentRepo.ListByCustomer(ctx, id.TenantID, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentHistoryItem, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.PaymentHistoryItem{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Notes:     p.Notes,
			CreatedBy: p.CreatedBy,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// ListSupplierPayments devuelve el historial de pagos a un proveedor.
func (uc *PaymentsUseCase) ListSupplierPayments(ctx context.Context, id authz.Identity, supplierID string, limit, offset int) ([]dto.PaymentHistoryItem, error) {
	if err := authz.Require(id, permission.ActionRecordPayments); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, id.TenantID, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NotFoundf("proveedor no encontrado")
	}
	rows, err := uc.supplierPaymentRepo.ListBySupplier(ctx, id.TenantID, supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentHistoryItem, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.PaymentHistoryItem{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Notes:     p.Notes,
			CreatedBy: p.CreatedBy,
			CreatedAt: p.CreatedAt,
		})
	}
	return out, nil
}

// SetSupplierBalance fija el saldo absoluto de un proveedor. Mismas reglas
// que el override de cliente: razón obligatoria, saldo no negativo.
func (uc *PaymentsUseCase) SetSupplierBalance(ctx context.Context, id authz.Identity, supplierID string, in dto.SetBalanceRequest) error {
	if err := authz.Require(id, permission.ActionSetBalances); err != nil {
		return err
	}
	if in.Reason == "" {
		return domain.Validationf("el override de saldo exige una razón")
	}
	if in.Balance.IsNegative() {
		return domain.Validationf("el saldo no puede ser negativo")
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, id.TenantID, supplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.NotFoundf("proveedor no encontrado")
	}
	if err := uc.supplierRepo.SetBalance(ctx, id.TenantID, supplierID, in.Balance); err != nil {
		return err
	}
	uc.recorder.Record(ctx, audit.Entry{
		TenantID:    id.TenantID,
		PrincipalID: id.PrincipalID,
		Action:      audit.ActionSetBalance,
		Entity:      "supplier",
		EntityID:    supplierID,
		Detail:      "reason=" + in.Reason,
	})
	return nil
}

// SetSupplierBalances fija saldos absolutos de proveedores en lote, todos
// en una sola transacción.
func (uc *PaymentsUseCase) SetSupplierBalances(ctx context.Context, id authz.Identity, in dto.SetSupplierBalancesRequest) error {
	if err := authz.Require(id, permission.ActionSetBalances); err != nil {
		return err
	}
	if in.Reason == "" {
		return domain.Validationf("el override de saldo exige una razón")
	}
	if len(in.Entries) == 0 {
		return domain.Validationf("el lote está vacío")
	}
	for _, e := range in.Entries {
		if e.Balance.IsNegative() {
			return domain.Validationf("el saldo no puede ser negativo (proveedor %s)", e.SupplierID)
		}
		supplier, err := uc.supplierRepo.GetByID(ctx, id.TenantID, e.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.NotFoundf("proveedor no encontrado")
		}
	}

	err := uc.txRunner.RunPayments(ctx, func(
		_ repository.CustomerPaymentRepository,
		_ repository.SupplierPaymentRepository,
		_ repository.CustomerRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		for _, e := range in.Entries {
			if err := supplierRepo.SetBalance(ctx, id.TenantID, e.SupplierID, e.Balance); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, e := range in.Entries {
		uc.recorder.Record(ctx, audit.Entry{
			TenantID:    id.TenantID,
			PrincipalID: id.PrincipalID,
			Action:      audit.ActionSetBalance,
			Entity:      "supplier",
			EntityID:    e.SupplierID,
			Detail:      "reason=" + in.Reason,
		})
	}
	return nil
}
