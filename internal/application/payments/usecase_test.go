package payments_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/notify"
	"github.com/tu-usuario/retail-ledger/internal/application/payments"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantID   = "00000000-0000-0000-0000-0000000000a1"
	testUserID     = "00000000-0000-0000-0000-0000000000b1"
	testCustomerID = "00000000-0000-0000-0000-0000000000d1"
	testSupplierID = "00000000-0000-0000-0000-0000000000d2"
)

func identityFor(role permission.Role) authz.Identity {
	return authz.Identity{PrincipalID: testUserID, TenantID: testTenantID, Role: role}
}

type fixture struct {
	store *memory.Store
	uc    *payments.PaymentsUseCase
}

// newFixture arma el caso de uso con un cliente que debe 75.50 y un
// proveedor al que se le deben 200.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	st.PutCustomer(entity.Customer{
		ID: testCustomerID, TenantID: testTenantID,
		Name: "María Pérez", Balance: decimal.RequireFromString("75.50"),
	})
	st.PutSupplier(entity.Supplier{
		ID: testSupplierID, TenantID: testTenantID,
		Name: "Distribuidora El Norte", Balance: decimal.NewFromInt(200),
	})
	uc := payments.NewPaymentsUseCase(
		memory.NewTxRunner(st),
		memory.NewCustomerRepository(st),
		memory.NewSupplierRepository(st),
		memory.NewCustomerPaymentRepository(st),
		memory.NewSupplierPaymentRepository(st),
		audit.Noop{},
		notify.Noop{},
	)
	return &fixture{store: st, uc: uc}
}

func (f *fixture) customerBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	c, ok := f.store.Customer(testCustomerID)
	require.True(t, ok)
	return c.Balance
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordCustomerPayment
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: un abono parcial decrementa la deuda exactamente por el monto.
func TestRecordCustomerPayment_AbonoParcial(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("25.50"),
		Method: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(50)), "saldo = 75.50 - 25.50")
	assert.True(t, f.customerBalance(t).Equal(decimal.NewFromInt(50)))
	assert.Len(t, f.store.CustomerPayments(), 1, "debe quedar el pago registrado")
}

// Caso 2: pagar el saldo exacto es válido y deja la deuda en cero.
func TestRecordCustomerPayment_SaldoExacto(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("75.50"),
		Method: entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	assert.True(t, resp.NewBalance.IsZero(), "la deuda debe quedar en cero")
	assert.True(t, f.customerBalance(t).IsZero())
}

// Caso 3: un centavo por encima del saldo se rechaza con el saldo real en
// el detalle, sin registrar nada.
func TestRecordCustomerPayment_ExcedeSaldo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString("75.51"),
		Method: entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "75.5", derr.Meta["current_balance"], "el detalle debe traer el saldo real")

	assert.True(t, f.customerBalance(t).Equal(decimal.RequireFromString("75.50")),
		"el saldo no debe moverse")
	assert.Empty(t, f.store.CustomerPayments(), "no debe quedar pago registrado")
}

// Caso 4: montos no positivos y métodos desconocidos se rechazan.
func TestRecordCustomerPayment_Validaciones(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.Zero,
		Method: entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "monto cero")

	_, err = f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
		Method: "CHEQUE_VOLADOR",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "método desconocido")
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSupplierPayment
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el pago a proveedor decrementa lo que el negocio debe.
func TestRecordSupplierPayment_DecrementaDeuda(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.RecordSupplierPayment(context.Background(), identityFor(permission.RoleAccountant), testSupplierID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(120),
		Method: entity.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.True(t, resp.NewBalance.Equal(decimal.NewFromInt(80)), "deuda = 200 - 120")
	assert.Len(t, f.store.SupplierPayments(), 1)
}

// Caso 2: pagar más de lo que se debe se rechaza.
func TestRecordSupplierPayment_ExcedeDeuda(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordSupplierPayment(context.Background(), identityFor(permission.RoleAccountant), testSupplierID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(201),
		Method: entity.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientBalance, domain.KindOf(err))
	assert.Empty(t, f.store.SupplierPayments())
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de pagos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el historial del cliente muestra sus abonos, el más reciente primero.
func TestListCustomerPayments_Historial(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(20), Method: entity.PaymentMethodCash, Notes: "primer abono",
	})
	require.NoError(t, err)
	_, err = f.uc.RecordCustomerPayment(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(30), Method: entity.PaymentMethodTransfer, Notes: "segundo abono",
	})
	require.NoError(t, err)

	rows, err := f.uc.ListCustomerPayments(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, 20, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "segundo abono", rows[0].Notes, "el más reciente primero")
	assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(20)))
}

// Caso 2: el historial de un proveedor inexistente responde no-encontrado.
func TestListSupplierPayments_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListSupplierPayments(context.Background(), identityFor(permission.RoleAccountant), "no-existe", 20, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Overrides de saldo
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el override fija el saldo absoluto; exige razón.
func TestSetCustomerBalance_OverrideConRazon(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetCustomerBalance(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(10),
		Reason:  "ajuste por conciliación de caja",
	})
	require.NoError(t, err)
	assert.True(t, f.customerBalance(t).Equal(decimal.NewFromInt(10)))
}

// Caso 2: sin razón, o con saldo negativo, el override se rechaza.
func TestSetCustomerBalance_Validaciones(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetCustomerBalance(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "sin razón")

	err = f.uc.SetCustomerBalance(context.Background(), identityFor(permission.RoleAccountant), testCustomerID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(-5),
		Reason:  "ajuste",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "saldo negativo")
}

// Caso 3: cashier no tiene set_balances, aunque sí record_payments.
func TestSetCustomerBalance_CashierBloqueado(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetCustomerBalance(context.Background(), identityFor(permission.RoleCashier), testCustomerID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(10),
		Reason:  "ajuste",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

// Caso 4: el override masivo aplica todos los saldos o ninguno.
func TestSetCustomerBalances_Lote(t *testing.T) {
	f := newFixture(t)
	otherID := "00000000-0000-0000-0000-0000000000d9"
	f.store.PutCustomer(entity.Customer{
		ID: otherID, TenantID: testTenantID,
		Name: "Pedro Gómez", Balance: decimal.NewFromInt(30),
	})

	err := f.uc.SetCustomerBalances(context.Background(), identityFor(permission.RoleOwner), dto.SetBalancesRequest{
		Reason: "migración de cartera",
		Entries: []dto.SetBalanceEntry{
			{CustomerID: testCustomerID, Balance: decimal.NewFromInt(5)},
			{CustomerID: otherID, Balance: decimal.Zero},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.customerBalance(t).Equal(decimal.NewFromInt(5)))
	other, _ := f.store.Customer(otherID)
	assert.True(t, other.Balance.IsZero())

	// Un cliente inexistente en el lote rechaza el lote completo.
	err = f.uc.SetCustomerBalances(context.Background(), identityFor(permission.RoleOwner), dto.SetBalancesRequest{
		Reason: "segundo intento",
		Entries: []dto.SetBalanceEntry{
			{CustomerID: testCustomerID, Balance: decimal.NewFromInt(99)},
			{CustomerID: "no-existe", Balance: decimal.Zero},
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.True(t, f.customerBalance(t).Equal(decimal.NewFromInt(5)),
		"ningún saldo del lote fallido debe aplicarse")
}

// Caso 5: el override de proveedor sigue las mismas reglas que el de cliente.
func TestSetSupplierBalance_Override(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetSupplierBalance(context.Background(), identityFor(permission.RoleAccountant), testSupplierID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(150),
		Reason:  "conciliación con estado de cuenta del proveedor",
	})
	require.NoError(t, err)
	s, ok := f.store.Supplier(testSupplierID)
	require.True(t, ok)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(150)))

	err = f.uc.SetSupplierBalance(context.Background(), identityFor(permission.RoleAccountant), testSupplierID, dto.SetBalanceRequest{
		Balance: decimal.NewFromInt(5),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "sin razón")
}

// Caso 6: el override masivo de proveedores también es todo-o-nada.
func TestSetSupplierBalances_Lote(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetSupplierBalances(context.Background(), identityFor(permission.RoleOwner), dto.SetSupplierBalancesRequest{
		Reason: "migración de cuentas por pagar",
		Entries: []dto.SetSupplierBalanceEntry{
			{SupplierID: testSupplierID, Balance: decimal.NewFromInt(40)},
			{SupplierID: "no-existe", Balance: decimal.Zero},
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	s, ok := f.store.Supplier(testSupplierID)
	require.True(t, ok)
	assert.True(t, s.Balance.Equal(decimal.NewFromInt(200)),
		"ningún saldo del lote fallido debe aplicarse")
}
