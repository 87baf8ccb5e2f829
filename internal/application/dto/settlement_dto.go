package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSettlementRequest body para POST /api/settlements.
type CreateSettlementRequest struct {
	DocumentID  string          `json:"document_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
	Date        string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description string          `json:"description,omitempty" validate:"max=500"`
}

// SettlementResponse liquidación registrada contra un documento.
type SettlementResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	DocumentID  string          `json:"document_id"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// VoidResponse confirmación de una anulación.
type VoidResponse struct {
	Message           string   `json:"message"`
	ID                string   `json:"id"`
	VoidedSettlements []string `json:"voided_settlements,omitempty"`
}
