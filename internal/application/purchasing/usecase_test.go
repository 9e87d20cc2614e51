package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/purchasing"
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
	testItemID     = "00000000-0000-0000-0000-0000000000c1"
	testSupplierID = "00000000-0000-0000-0000-0000000000d2"
	testOrderID    = "00000000-0000-0000-0000-0000000000e2"
)

func identityFor(role permission.Role) authz.Identity {
	return authz.Identity{PrincipalID: testUserID, TenantID: testTenantID, Role: role}
}

type fixture struct {
	store *memory.Store
	uc    *purchasing.PurchasingUseCase
}

// newFixture arma el motor de compras con un ítem (stock 3, costo 8) y un
// proveedor con saldo cero.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	st.PutItem(entity.Item{
		ID: testItemID, TenantID: testTenantID,
		Name: "Aceite vegetal 1L", SKU: "ACEI-1L",
		Quantity: 3, CostPrice: decimal.NewFromInt(8),
		SellingPrice: decimal.NewFromInt(12),
	})
	st.PutSupplier(entity.Supplier{
		ID: testSupplierID, TenantID: testTenantID,
		Name: "Distribuidora El Norte", Balance: decimal.Zero,
	})
	uc := purchasing.NewPurchasingUseCase(
		memory.NewTxRunner(st),
		memory.NewPurchaseRepository(st),
		memory.NewItemRepository(st),
		memory.NewSupplierRepository(st),
		memory.NewPurchaseOrderRepository(st),
		audit.Noop{},
	)
	return &fixture{store: st, uc: uc}
}

func (f *fixture) itemState(t *testing.T) entity.Item {
	t.Helper()
	it, ok := f.store.Item(testItemID)
	require.True(t, ok)
	return it
}

func (f *fixture) supplierBalance(t *testing.T) decimal.Decimal {
	t.Helper()
	sp, ok := f.store.Supplier(testSupplierID)
	require.True(t, ok)
	return sp.Balance
}

func seedOrder(f *fixture, status, supplierID string) {
	f.store.PutOrder(entity.PurchaseOrder{
		ID: testOrderID, TenantID: testTenantID,
		SupplierID: supplierID, Status: status,
		TotalAmount: decimal.NewFromInt(50),
		Items: []entity.PurchaseOrderItem{
			{
				ID: "po-line-1", PurchaseOrderID: testOrderID, ItemID: testItemID,
				ItemName: "Aceite vegetal 1L", Quantity: 5,
				Price: decimal.NewFromInt(10),
			},
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchase / VoidPurchase
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la compra suma stock, refresca el costo del ítem y el crédito
// no pagado engrosa la deuda con el proveedor.
func TestCreatePurchase_SumaStockYDeuda(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreatePurchase(context.Background(), identityFor(permission.RoleInventoryManager), dto.CreatePurchaseRequest{
		SupplierID:  testSupplierID,
		PaidAmount:  decimal.NewFromInt(30),
		PaymentType: entity.PaymentTypeCredit,
		Items: []dto.PurchaseLineRequest{
			{ItemID: testItemID, Quantity: 10, Price: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(90)), "total = 10 × 9")
	it := f.itemState(t)
	assert.EqualValues(t, 13, it.Quantity, "stock = 3 + 10")
	assert.True(t, it.CostPrice.Equal(decimal.NewFromInt(9)), "el costo se refresca con el de la línea")
	assert.True(t, f.supplierBalance(t).Equal(decimal.NewFromInt(60)),
		"la deuda con el proveedor = 90 - 30")
}

// Caso 2: crédito sin proveedor se rechaza; la deuda necesita un saldo.
func TestCreatePurchase_CreditoSinProveedorRechazado(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreatePurchase(context.Background(), identityFor(permission.RoleOwner), dto.CreatePurchaseRequest{
		PaidAmount:  decimal.NewFromInt(10),
		PaymentType: entity.PaymentTypeCredit,
		Items: []dto.PurchaseLineRequest{
			{ItemID: testItemID, Quantity: 5, Price: decimal.NewFromInt(9)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.EqualValues(t, 3, f.itemState(t).Quantity, "el stock no debe cambiar")
}

// Caso 3: anular la compra revierte stock y deuda y borra el registro.
func TestVoidPurchase_RevierteStockYDeuda(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreatePurchase(context.Background(), identityFor(permission.RoleOwner), dto.CreatePurchaseRequest{
		SupplierID:  testSupplierID,
		PaidAmount:  decimal.NewFromInt(30),
		PaymentType: entity.PaymentTypeCredit,
		Items: []dto.PurchaseLineRequest{
			{ItemID: testItemID, Quantity: 10, Price: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	err = f.uc.VoidPurchase(context.Background(), identityFor(permission.RoleOwner), resp.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, f.itemState(t).Quantity, "el stock debe volver a 3")
	assert.True(t, f.supplierBalance(t).IsZero(), "la deuda debe volver a 0")
	assert.Empty(t, f.store.Purchases(), "la compra anulada no debe existir")
}

// Caso 4: si el stock recibido ya se vendió, la anulación se rechaza:
// revertir dejaría el stock negativo.
func TestVoidPurchase_StockYaConsumido(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreatePurchase(context.Background(), identityFor(permission.RoleOwner), dto.CreatePurchaseRequest{
		SupplierID:  testSupplierID,
		PaidAmount:  decimal.NewFromInt(90),
		PaymentType: entity.PaymentTypeCash,
		Items: []dto.PurchaseLineRequest{
			{ItemID: testItemID, Quantity: 10, Price: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)

	// Simular que casi todo lo recibido ya salió.
	it := f.itemState(t)
	it.Quantity = 4
	f.store.PutItem(it)

	err = f.uc.VoidPurchase(context.Background(), identityFor(permission.RoleOwner), resp.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.Len(t, f.store.Purchases(), 1, "la compra debe seguir existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: crear una orden no mueve stock ni saldos.
func TestCreatePurchaseOrder_NoMueveLedger(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreatePurchaseOrder(context.Background(), identityFor(permission.RoleInventoryManager), dto.CreatePurchaseOrderRequest{
		SupplierID: testSupplierID,
		Items: []dto.PurchaseOrderLineRequest{
			{ItemID: testItemID, Quantity: 5, Price: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusDraft, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(50)))

	assert.EqualValues(t, 3, f.itemState(t).Quantity, "el borrador no toca stock")
	assert.True(t, f.supplierBalance(t).IsZero(), "el borrador no toca saldos")
}

// Caso 2: recibir la orden crea la compra con los costos pactados, suma
// stock y deuda, y marca la orden RECEIVED con el vínculo a la compra.
func TestConvertPurchaseOrder_RecepcionCompleta(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusSent, testSupplierID)

	resp, err := f.uc.ConvertPurchaseOrder(context.Background(), identityFor(permission.RoleInventoryManager), testOrderID, dto.ConvertPurchaseOrderRequest{
		PaidAmount:  decimal.NewFromInt(20),
		PaymentType: entity.PaymentTypeCredit,
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(50)), "total = 5 × 10 pactado")
	it := f.itemState(t)
	assert.EqualValues(t, 8, it.Quantity, "stock = 3 + 5")
	assert.True(t, it.CostPrice.Equal(decimal.NewFromInt(10)), "el costo se refresca con el pactado")
	assert.True(t, f.supplierBalance(t).Equal(decimal.NewFromInt(30)), "deuda = 50 - 20")

	order, ok := f.store.Order(testOrderID)
	require.True(t, ok)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, order.Status)
	require.NotNil(t, order.ConvertedPurchaseID)
	assert.Equal(t, resp.ID, *order.ConvertedPurchaseID)
}

// Caso 3: la segunda recepción observa Conflict; queda exactamente una compra.
func TestConvertPurchaseOrder_SegundaRecepcionConflicto(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusDraft, testSupplierID)
	in := dto.ConvertPurchaseOrderRequest{
		PaidAmount:  decimal.NewFromInt(50),
		PaymentType: entity.PaymentTypeCash,
	}

	_, err := f.uc.ConvertPurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID, in)
	require.NoError(t, err)

	_, err = f.uc.ConvertPurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID, in)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	assert.Len(t, f.store.Purchases(), 1, "debe existir exactamente una compra")
	assert.EqualValues(t, 8, f.itemState(t).Quantity, "el stock solo se suma una vez")
}

// Caso 4: la recepción exige proveedor asociado.
func TestConvertPurchaseOrder_SinProveedorRechazada(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusDraft, "")

	_, err := f.uc.ConvertPurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID, dto.ConvertPurchaseOrderRequest{
		PaymentType: entity.PaymentTypeCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Empty(t, f.store.Purchases())
}

// Caso 5: RECEIVED no es alcanzable vía cambio de estado, solo recibiendo.
func TestUpdatePurchaseOrderStatus_ReceivedBloqueado(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusDraft, testSupplierID)

	_, err := f.uc.UpdatePurchaseOrderStatus(context.Background(), identityFor(permission.RoleOwner), testOrderID, dto.UpdatePurchaseOrderStatusRequest{
		Status: entity.PurchaseOrderStatusReceived,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// Caso 6: una orden cancelada es terminal, ni se recibe ni cambia de estado.
func TestPurchaseOrder_CanceladaEsTerminal(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusCancelled, testSupplierID)

	_, err := f.uc.ConvertPurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID, dto.ConvertPurchaseOrderRequest{
		PaymentType: entity.PaymentTypeCash,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	_, err = f.uc.UpdatePurchaseOrderStatus(context.Background(), identityFor(permission.RoleOwner), testOrderID, dto.UpdatePurchaseOrderStatusRequest{
		Status: entity.PurchaseOrderStatusSent,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// Caso 7: solo las órdenes en DRAFT pueden borrarse.
func TestDeletePurchaseOrder_SoloDraft(t *testing.T) {
	f := newFixture(t)
	seedOrder(f, entity.PurchaseOrderStatusSent, testSupplierID)

	err := f.uc.DeletePurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	seedOrder(f, entity.PurchaseOrderStatusDraft, testSupplierID)
	err = f.uc.DeletePurchaseOrder(context.Background(), identityFor(permission.RoleOwner), testOrderID)
	require.NoError(t, err)
	_, ok := f.store.Order(testOrderID)
	assert.False(t, ok, "la orden en DRAFT debe borrarse")
}
