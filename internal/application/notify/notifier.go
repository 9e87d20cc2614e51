package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Notifier es el puerto hacia los colaboradores de notificación (SMS/email).
// Se invoca únicamente después de un commit exitoso; nunca participa en la
// transacción y su fallo no afecta el estado ya confirmado.
type Notifier interface {
	// PaymentRecorded notifica al tercero que su pago quedó registrado.
	PaymentRecorded(ctx context.Context, tenantID, counterpartyID string, amount, newBalance decimal.Decimal)
	// BalanceReminder recuerda al tercero su saldo pendiente.
	BalanceReminder(ctx context.Context, tenantID, counterpartyID string, balance decimal.Decimal)
}

// Noop descarta las notificaciones. Útil en tests.
type Noop struct{}

func (Noop) PaymentRecorded(context.Context, string, string, decimal.Decimal, decimal.Decimal) {}
func (Noop) BalanceReminder(context.Context, string, string, decimal.Decimal)                  {}
