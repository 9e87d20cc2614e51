package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-ledger/internal/application/authz"
	"github.com/tu-usuario/retail-ledger/internal/application/dto"
	"github.com/tu-usuario/retail-ledger/internal/application/usecase"
	"github.com/tu-usuario/retail-ledger/internal/domain"
	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
	"github.com/tu-usuario/retail-ledger/internal/infrastructure/memory"
)

const (
	testTenantID = "00000000-0000-0000-0000-0000000000a1"
	testUserID   = "00000000-0000-0000-0000-0000000000b1"
)

func identityFor(role permission.Role) authz.Identity {
	return authz.Identity{PrincipalID: testUserID, TenantID: testTenantID, Role: role}
}

func newItemUC(t *testing.T) (*usecase.ItemUseCase, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	return usecase.NewItemUseCase(memory.NewItemRepository(st)), st
}

// Caso 1: alta con inventario de apertura.
func TestItemCreate_InventarioDeApertura(t *testing.T) {
	uc, _ := newItemUC(t)
	resp, err := uc.Create(context.Background(), identityFor(permission.RoleInventoryManager), dto.CreateItemRequest{
		Name: "Arroz blanco 1kg", SKU: "ARRO-1K",
		Quantity:  25,
		CostPrice: decimal.NewFromInt(3), SellingPrice: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 25, resp.Quantity)
}

// Caso 2: nombre vacío, cantidad inicial negativa o precio negativo → VALIDATION.
func TestItemCreate_Validaciones(t *testing.T) {
	uc, _ := newItemUC(t)
	casos := []dto.CreateItemRequest{
		{SKU: "X-1"},
		{Name: "Algo", Quantity: -1},
		{Name: "Algo", SellingPrice: decimal.NewFromInt(-5)},
	}
	for i, in := range casos {
		_, err := uc.Create(context.Background(), identityFor(permission.RoleOwner), in)
		require.Error(t, err, "caso %d", i)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "caso %d", i)
	}
}

// Caso 3: un SKU repetido dentro del tenant se rechaza con Conflict.
func TestItemCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newItemUC(t)
	in := dto.CreateItemRequest{Name: "Arroz blanco 1kg", SKU: "ARRO-1K"}
	_, err := uc.Create(context.Background(), identityFor(permission.RoleOwner), in)
	require.NoError(t, err)

	in.Name = "Arroz integral 1kg"
	_, err = uc.Create(context.Background(), identityFor(permission.RoleOwner), in)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// Caso 4: Update cambia datos y precios pero jamás la cantidad.
func TestItemUpdate_NoTocaCantidad(t *testing.T) {
	uc, st := newItemUC(t)
	created, err := uc.Create(context.Background(), identityFor(permission.RoleOwner), dto.CreateItemRequest{
		Name: "Arroz blanco 1kg", SKU: "ARRO-1K", Quantity: 25,
		SellingPrice: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	resp, err := uc.Update(context.Background(), identityFor(permission.RoleOwner), created.ID, dto.UpdateItemRequest{
		Name: "Arroz blanco premium 1kg", SKU: "ARRO-1KP",
		CostPrice: decimal.NewFromInt(4), SellingPrice: decimal.NewFromInt(7),
	})
	require.NoError(t, err)
	assert.Equal(t, "Arroz blanco premium 1kg", resp.Name)
	assert.EqualValues(t, 25, resp.Quantity, "la cantidad no cambia por Update")

	it, ok := st.Item(created.ID)
	require.True(t, ok)
	assert.EqualValues(t, 25, it.Quantity)
}

// Caso 5: cashier no administra ítems.
func TestItem_CashierBloqueado(t *testing.T) {
	uc, _ := newItemUC(t)
	_, err := uc.Create(context.Background(), identityFor(permission.RoleCashier), dto.CreateItemRequest{Name: "Algo"})
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}
