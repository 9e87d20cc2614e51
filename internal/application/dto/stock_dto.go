package dto

import "time"

// CreateStockAdjustmentRequest ajuste manual de stock. Reason obligatorio.
type CreateStockAdjustmentRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"` // INCREASE | DECREASE
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// SetQuantityRequest override administrativo: fija la cantidad absoluta.
type SetQuantityRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// StockAdjustmentHistoryItem ajuste tal como quedó en el historial.
type StockAdjustmentHistoryItem struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// StockAdjustmentResponse ajuste registrado con la cantidad resultante.
type StockAdjustmentResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason"`
	NewQuantity int64     `json:"new_quantity"`
	CreatedAt   time.Time `json:"created_at"`
}
