package permission

// Role es el conjunto cerrado de roles del sistema.
type Role string

const (
	RoleOwner            Role = "owner"
	RoleStoreManager     Role = "store_manager"
	RoleCashier          Role = "cashier"
	RoleInventoryManager Role = "inventory_manager"
	RoleAccountant       Role = "accountant"
	RoleStaff            Role = "staff"
)

// Action identifica una operación que requiere permiso.
type Action string

const (
	ActionManageItems          Action = "manage_items"
	ActionManageCounterparties Action = "manage_counterparties"
	ActionCreateSales          Action = "create_sales"
	ActionEditSales            Action = "edit_sales"
	ActionVoidSales            Action = "void_sales"
	ActionCreatePurchases      Action = "create_purchases"
	ActionVoidPurchases        Action = "void_purchases"
	ActionCreateQuotation      Action = "create_quotation"
	ActionManageQuotation      Action = "manage_quotation"
	ActionConvertQuotation     Action = "convert_quotation"
	ActionCreatePurchaseOrder  Action = "create_purchase_order"
	ActionManagePurchaseOrder  Action = "manage_purchase_order"
	ActionConvertPurchaseOrder Action = "convert_purchase_order"
	ActionRecordPayments       Action = "record_payments"
	ActionAdjustStock          Action = "adjust_stock"
	ActionSetBalances          Action = "set_balances"
	ActionViewAuditLogs        Action = "view_audit_logs"
)

// Valid reporta si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	_, ok := matrix[r]
	return ok
}

// Parse valida el string y devuelve el Role, o "" si no existe.
func Parse(s string) (Role, bool) {
	r := Role(s)
	if r.Valid() {
		return r, true
	}
	return "", false
}

// matrix es la tabla estática rol → acciones permitidas.
// Agregar un rol nuevo obliga a declarar aquí su conjunto de permisos.
var matrix = map[Role]map[Action]bool{
	RoleOwner: actionSet(
		ActionManageItems, ActionManageCounterparties,
		ActionCreateSales, ActionEditSales, ActionVoidSales,
		ActionCreatePurchases, ActionVoidPurchases,
		ActionCreateQuotation, ActionManageQuotation, ActionConvertQuotation,
		ActionCreatePurchaseOrder, ActionManagePurchaseOrder, ActionConvertPurchaseOrder,
		ActionRecordPayments, ActionAdjustStock, ActionSetBalances,
		ActionViewAuditLogs,
	),
	RoleStoreManager: actionSet(
		ActionManageItems, ActionManageCounterparties,
		ActionCreateSales, ActionEditSales,
		ActionCreatePurchases,
		ActionCreateQuotation, ActionManageQuotation, ActionConvertQuotation,
		ActionCreatePurchaseOrder, ActionManagePurchaseOrder, ActionConvertPurchaseOrder,
		ActionRecordPayments, ActionAdjustStock,
	),
	RoleCashier: actionSet(
		ActionCreateSales,
		ActionCreateQuotation,
		ActionRecordPayments,
	),
	RoleInventoryManager: actionSet(
		ActionManageItems,
		ActionCreatePurchases,
		ActionCreatePurchaseOrder, ActionManagePurchaseOrder, ActionConvertPurchaseOrder,
		ActionAdjustStock,
	),
	RoleAccountant: actionSet(
		ActionRecordPayments, ActionSetBalances,
		ActionManageCounterparties,
	),
	RoleStaff: actionSet(
		ActionCreateQuotation,
	),
}

func actionSet(actions ...Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}

// Allowed reporta si el rol puede ejecutar la acción.
// void_sales y view_audit_logs son verificaciones exactas de rol
// (solo Owner), independientes de la tabla.
func Allowed(role Role, action Action) bool {
	switch action {
	case ActionVoidSales, ActionViewAuditLogs:
		return role == RoleOwner
	}
	set, ok := matrix[role]
	if !ok {
		return false
	}
	return set[action]
}
