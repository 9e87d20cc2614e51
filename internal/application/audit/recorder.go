package audit

import "context"

// Acciones de auditoría. Los overrides administrativos usan acciones
// propias, distintas del movimiento normal de ledger.
const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionVoid          = "void"
	ActionConvert       = "convert"
	ActionSetBalance    = "set_balance"
	ActionSetQuantity   = "set_quantity"
	ActionRecordPayment = "record_payment"
	ActionAdjustStock   = "adjust_stock"
	ActionStatusChange  = "status_change"
)

// Entry es el intento de auditoría que el core emite tras un commit
// exitoso. La persistencia del log es de un colaborador externo.
type Entry struct {
	TenantID    string
	PrincipalID string
	Action      string
	Entity      string
	EntityID    string
	Detail      string
}

// Recorder recibe intentos de auditoría. Se invoca solo después del commit;
// su fallo jamás revierte ni falla la operación de negocio (los usecases
// ignoran el error y a lo sumo lo loguean).
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Noop descarta los intentos de auditoría. Útil en tests.
type Noop struct{}

// Record no hace nada.
func (Noop) Record(context.Context, Entry) {}
