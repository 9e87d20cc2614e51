package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationLineRequest una línea de cotización. Nombre y precio del ítem se
// congelan como snapshot al crear.
type QuotationLineRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateQuotationRequest crea una cotización en DRAFT.
type CreateQuotationRequest struct {
	CustomerID string                 `json:"customer_id"`
	Items      []QuotationLineRequest `json:"items"`
}

// UpdateQuotationStatusRequest mueve la cotización entre estados.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status"`
}

// ConvertQuotationRequest parámetros de la conversión a venta.
type ConvertQuotationRequest struct {
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	PaymentType string          `json:"payment_type"`
}

// QuotationLineResponse línea con snapshot congelado.
type QuotationLineResponse struct {
	ItemID   string          `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// QuotationResponse cotización completa.
type QuotationResponse struct {
	ID              string                  `json:"id"`
	CustomerID      string                  `json:"customer_id,omitempty"`
	Status          string                  `json:"status"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	ConvertedSaleID string                  `json:"converted_sale_id,omitempty"`
	Items           []QuotationLineResponse `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
