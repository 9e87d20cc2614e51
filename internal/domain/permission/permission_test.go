package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/retail-ledger/internal/domain/permission"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la matriz rol → acción
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Owner puede ejecutar todas las acciones del catálogo.
func TestAllowed_OwnerPuedeTodo(t *testing.T) {
	todas := []permission.Action{
		permission.ActionManageItems, permission.ActionManageCounterparties,
		permission.ActionCreateSales, permission.ActionEditSales, permission.ActionVoidSales,
		permission.ActionCreatePurchases, permission.ActionVoidPurchases,
		permission.ActionCreateQuotation, permission.ActionManageQuotation, permission.ActionConvertQuotation,
		permission.ActionCreatePurchaseOrder, permission.ActionManagePurchaseOrder, permission.ActionConvertPurchaseOrder,
		permission.ActionRecordPayments, permission.ActionAdjustStock, permission.ActionSetBalances,
		permission.ActionViewAuditLogs,
	}
	for _, a := range todas {
		assert.True(t, permission.Allowed(permission.RoleOwner, a),
			"owner debe poder ejecutar %s", a)
	}
}

// Caso 2: void_sales y view_audit_logs son exclusivas del Owner,
// sin importar qué diga la tabla para los demás roles.
func TestAllowed_AccionesExclusivasDeOwner(t *testing.T) {
	otros := []permission.Role{
		permission.RoleStoreManager, permission.RoleCashier,
		permission.RoleInventoryManager, permission.RoleAccountant, permission.RoleStaff,
	}
	for _, r := range otros {
		assert.False(t, permission.Allowed(r, permission.ActionVoidSales),
			"solo owner puede anular ventas; %s no", r)
		assert.False(t, permission.Allowed(r, permission.ActionViewAuditLogs),
			"solo owner puede ver auditoría; %s no", r)
	}
}

// Caso 3: recortes representativos de cada rol.
func TestAllowed_MatrizPorRol(t *testing.T) {
	casos := []struct {
		role    permission.Role
		action  permission.Action
		allowed bool
	}{
		{permission.RoleStoreManager, permission.ActionEditSales, true},
		{permission.RoleStoreManager, permission.ActionVoidPurchases, false},
		{permission.RoleStoreManager, permission.ActionSetBalances, false},
		{permission.RoleCashier, permission.ActionCreateSales, true},
		{permission.RoleCashier, permission.ActionRecordPayments, true},
		{permission.RoleCashier, permission.ActionEditSales, false},
		{permission.RoleCashier, permission.ActionManageItems, false},
		{permission.RoleInventoryManager, permission.ActionAdjustStock, true},
		{permission.RoleInventoryManager, permission.ActionConvertPurchaseOrder, true},
		{permission.RoleInventoryManager, permission.ActionCreateSales, false},
		{permission.RoleAccountant, permission.ActionSetBalances, true},
		{permission.RoleAccountant, permission.ActionRecordPayments, true},
		{permission.RoleAccountant, permission.ActionAdjustStock, false},
		{permission.RoleStaff, permission.ActionCreateQuotation, true},
		{permission.RoleStaff, permission.ActionConvertQuotation, false},
	}
	for _, c := range casos {
		assert.Equal(t, c.allowed, permission.Allowed(c.role, c.action),
			"rol %s acción %s", c.role, c.action)
	}
}

// Caso 4: un rol desconocido no tiene ningún permiso.
func TestAllowed_RolDesconocidoNoTienePermisos(t *testing.T) {
	assert.False(t, permission.Allowed(permission.Role("superadmin"), permission.ActionCreateSales),
		"un rol fuera del conjunto cerrado no debe tener permisos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Parse / Valid
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_RolesValidosEInvalidos(t *testing.T) {
	r, ok := permission.Parse("cashier")
	assert.True(t, ok, "cashier es un rol válido")
	assert.Equal(t, permission.RoleCashier, r)

	_, ok = permission.Parse("admin")
	assert.False(t, ok, "admin no pertenece al conjunto cerrado de roles")

	_, ok = permission.Parse("")
	assert.False(t, ok, "el rol vacío no es válido")
}
