package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest body común para POST /api/purchases, /contracts, /deposits y /sales.
// CounterpartID es el cliente, o el comprador en ventas. Si llega GrossWeight la cantidad se
// calcula con la conversión del producto y Quantity se ignora.
type CreateDocumentRequest struct {
	CounterpartID string          `json:"counterpart_id" validate:"required"`
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gte=0"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gt=0"`
	GrossWeight   decimal.Decimal `json:"gross_weight,omitempty" validate:"gte=0"`
	Sacks         decimal.Decimal `json:"sacks,omitempty" validate:"gte=0"`
	Date          string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description   string          `json:"description,omitempty" validate:"max=500"`
}

// DocumentResponse documento con su cantidad liquidada y pendiente (derivadas, no almacenadas).
type DocumentResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Date          time.Time       `json:"date"`
	ProductID     string          `json:"product_id"`
	CounterpartID string          `json:"counterpart_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	GrossWeight   decimal.Decimal `json:"gross_weight"`
	Sacks         decimal.Decimal `json:"sacks"`
	Retained      decimal.Decimal `json:"retained"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	Settled       decimal.Decimal `json:"settled_quantity"`
	Pending       decimal.Decimal `json:"pending_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PendingResponse saldo pendiente de un documento origen.
type PendingResponse struct {
	DocumentID string          `json:"document_id"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
	Quantity   decimal.Decimal `json:"quantity"`
	Settled    decimal.Decimal `json:"settled_quantity"`
	Pending    decimal.Decimal `json:"pending_quantity"`
}
