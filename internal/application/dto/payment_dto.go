package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest registra un abono/pago contra el saldo del tercero.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Notes  string          `json:"notes"`
}

// PaymentHistoryItem pago tal como quedó en el historial del tercero.
type PaymentHistoryItem struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Notes     string          `json:"notes"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentResponse pago registrado con el saldo resultante.
type PaymentResponse struct {
	ID             string          `json:"id"`
	CounterpartyID string          `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}
