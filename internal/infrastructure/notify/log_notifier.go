package notify

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger/internal/application/notify"
	"github.com/tu-usuario/retail-ledger/pkg/logger"
)

var _ notify.Notifier = (*LogNotifier)(nil)

// LogNotifier emite las notificaciones como eventos de log. Reemplazable
// por un proveedor real de SMS/email sin tocar los casos de uso.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador con el logger de la app.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// PaymentRecorded notifica al tercero que su pago quedó registrado.
func (n *LogNotifier) PaymentRecorded(_ context.Context, tenantID, counterpartyID string, amount, newBalance decimal.Decimal) {
	n.log.Info().
		Str("tenant_id", tenantID).
		Str("counterparty_id", counterpartyID).
		Str("amount", amount.String()).
		Str("new_balance", newBalance.String()).
		Msg("pago registrado")
}

// BalanceReminder recuerda al tercero su saldo pendiente.
func (n *LogNotifier) BalanceReminder(_ context.Context, tenantID, counterpartyID string, balance decimal.Decimal) {
	n.log.Info().
		Str("tenant_id", tenantID).
		Str("counterparty_id", counterpartyID).
		Str("balance", balance.String()).
		Msg("recordatorio de saldo")
}
