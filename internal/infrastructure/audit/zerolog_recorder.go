package audit

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/application/audit"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

var _ audit.Recorder = (*ZerologRecorder)(nil)

// ZerologRecorder emite cada intención de auditoría como evento
// estructurado. Post-commit y fire-and-forget: un fallo de auditoría se
// loggea pero jamás revierte la operación ya confirmada.
type ZerologRecorder struct {
	log *logger.Logger
}

// NewZerologRecorder construye el recorder con el logger de la app.
func NewZerologRecorder(log *logger.Logger) *ZerologRecorder {
	return &ZerologRecorder{log: log}
}

// Record emite la entrada de auditoría.
func (r *ZerologRecorder) Record(_ context.Context, e audit.Entry) {
	r.log.Info().
		Str("audit", "true").
		Str("tenant_id", e.TenantID).
		Str("principal_id", e.PrincipalID).
		Str("action", string(e.Action)).
		Str("entity", e.Entity).
		Str("entity_id", e.EntityID).
		Str("detail", e.Detail).
		Msg("audit")
}
