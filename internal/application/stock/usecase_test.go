package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/stock"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

const (
	testTenantID = "00000000-0000-0000-0000-0000000000a1"
	testUserID   = "00000000-0000-0000-0000-0000000000b1"
	testItemID   = "00000000-0000-0000-0000-0000000000c1"
)

func identityFor(role permission.Role) authz.Identity {
	return authz.Identity{PrincipalID: testUserID, TenantID: testTenantID, Role: role}
}

type fixture struct {
	store *memory.Store
	uc    *stock.StockUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	st.PutItem(entity.Item{
		ID: testItemID, TenantID: testTenantID,
		Name: "Harina de trigo 1kg", SKU: "HARI-1K",
		Quantity: 7, SellingPrice: decimal.NewFromInt(6),
	})
	uc := stock.NewStockUseCase(
		memory.NewTxRunner(st),
		memory.NewItemRepository(st),
		memory.NewStockAdjustmentRepository(st),
		audit.Noop{},
	)
	return &fixture{store: st, uc: uc}
}

func (f *fixture) itemQuantity(t *testing.T) int64 {
	t.Helper()
	it, ok := f.store.Item(testItemID)
	require.True(t, ok)
	return it.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateAdjustment
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: INCREASE suma el delta y deja el ajuste registrado con su razón.
func TestCreateAdjustment_Increase(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleInventoryManager), dto.CreateStockAdjustmentRequest{
		ItemID:   testItemID,
		Type:     entity.AdjustmentTypeIncrease,
		Quantity: 3,
		Reason:   "conteo físico encontró unidades de más",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, resp.NewQuantity)
	assert.EqualValues(t, 10, f.itemQuantity(t))
	require.Len(t, f.store.Adjustments(), 1)
	assert.Equal(t, "conteo físico encontró unidades de más", f.store.Adjustments()[0].Reason)
}

// Caso 2: DECREASE resta el delta dentro del disponible.
func TestCreateAdjustment_Decrease(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleOwner), dto.CreateStockAdjustmentRequest{
		ItemID:   testItemID,
		Type:     entity.AdjustmentTypeDecrease,
		Quantity: 7,
		Reason:   "merma por vencimiento",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.NewQuantity, "bajar hasta cero exacto es válido")
	assert.EqualValues(t, 0, f.itemQuantity(t))
}

// Caso 3: DECREASE por encima del stock se rechaza antes de escribir.
func TestCreateAdjustment_DecreaseExcedeStock(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleOwner), dto.CreateStockAdjustmentRequest{
		ItemID:   testItemID,
		Type:     entity.AdjustmentTypeDecrease,
		Quantity: 8,
		Reason:   "merma",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(err))
	assert.EqualValues(t, 7, f.itemQuantity(t), "el stock no debe cambiar")
	assert.Empty(t, f.store.Adjustments(), "no debe quedar ajuste registrado")
}

// Caso 4: cantidad no positiva, razón vacía o tipo desconocido → VALIDATION.
func TestCreateAdjustment_Validaciones(t *testing.T) {
	f := newFixture(t)
	casos := []dto.CreateStockAdjustmentRequest{
		{ItemID: testItemID, Type: entity.AdjustmentTypeIncrease, Quantity: 0, Reason: "x"},
		{ItemID: testItemID, Type: entity.AdjustmentTypeIncrease, Quantity: -2, Reason: "x"},
		{ItemID: testItemID, Type: entity.AdjustmentTypeIncrease, Quantity: 1},
		{ItemID: testItemID, Type: "RESET", Quantity: 1, Reason: "x"},
	}
	for i, in := range casos {
		_, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleOwner), in)
		require.Error(t, err, "caso %d", i)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "caso %d", i)
	}
	assert.EqualValues(t, 7, f.itemQuantity(t))
}

// Caso 5: cashier no puede ajustar stock.
func TestCreateAdjustment_RolSinPermiso(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleCashier), dto.CreateStockAdjustmentRequest{
		ItemID:   testItemID,
		Type:     entity.AdjustmentTypeIncrease,
		Quantity: 1,
		Reason:   "intento",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// SetQuantity
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el override fija la cantidad absoluta, incluso por encima del
// stock actual, siempre con razón.
func TestSetQuantity_OverrideAbsoluto(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetQuantity(context.Background(), identityFor(permission.RoleInventoryManager), dto.SetQuantityRequest{
		ItemID:   testItemID,
		Quantity: 42,
		Reason:   "inventario inicial tras migración",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, f.itemQuantity(t))
}

// Caso 2: sin razón o con cantidad negativa se rechaza.
func TestSetQuantity_Validaciones(t *testing.T) {
	f := newFixture(t)
	err := f.uc.SetQuantity(context.Background(), identityFor(permission.RoleOwner), dto.SetQuantityRequest{
		ItemID: testItemID, Quantity: 5,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "sin razón")

	err = f.uc.SetQuantity(context.Background(), identityFor(permission.RoleOwner), dto.SetQuantityRequest{
		ItemID: testItemID, Quantity: -1, Reason: "x",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err), "cantidad negativa")
	assert.EqualValues(t, 7, f.itemQuantity(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// ListAdjustments
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el historial devuelve los ajustes del ítem, el más reciente primero.
func TestListAdjustments_Historial(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleOwner), dto.CreateStockAdjustmentRequest{
		ItemID: testItemID, Type: entity.AdjustmentTypeIncrease, Quantity: 3,
		Reason: "conteo físico",
	})
	require.NoError(t, err)
	_, err = f.uc.CreateAdjustment(context.Background(), identityFor(permission.RoleOwner), dto.CreateStockAdjustmentRequest{
		ItemID: testItemID, Type: entity.AdjustmentTypeDecrease, Quantity: 2,
		Reason: "merma",
	})
	require.NoError(t, err)

	rows, err := f.uc.ListAdjustments(context.Background(), identityFor(permission.RoleInventoryManager), testItemID, 20, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "merma", rows[0].Reason, "el más reciente primero")
	assert.Equal(t, "conteo físico", rows[1].Reason)
}

// Caso 2: historial de un ítem inexistente responde no-encontrado.
func TestListAdjustments_ItemInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListAdjustments(context.Background(), identityFor(permission.RoleOwner), "no-existe", 20, 0)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
