package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementResponse asiento del kardex.
type MovementResponse struct {
	ID             string          `json:"id"`
	Scope          string          `json:"scope"`
	ClientID       string          `json:"client_id,omitempty"`
	ProductID      string          `json:"product_id"`
	Direction      string          `json:"direction"`
	PriorDirection string          `json:"prior_direction,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Sacks          decimal.Decimal `json:"sacks"`
	OriginType     string          `json:"origin_type"`
	OriginID       string          `json:"origin_id"`
	Note           string          `json:"note,omitempty"`
	Date           time.Time       `json:"date"`
	VoidedAt       *time.Time      `json:"voided_at,omitempty"`
}

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	ProductID string `query:"product_id"`
	Scope     string `query:"scope" validate:"omitempty,oneof=ORGANIZATION CLIENT"`
	ClientID  string `query:"client_id"`
	PageRequest
}

// BalanceResponse saldo de un producto en un ámbito.
type BalanceResponse struct {
	Scope     string          `json:"scope"`
	ClientID  string          `json:"client_id,omitempty"`
	ProductID string          `json:"product_id"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
	Net       decimal.Decimal `json:"net"`
}

// ReplayResponse saldo reconstruido desde los movimientos activos frente al saldo almacenado.
type ReplayResponse struct {
	Stored    BalanceResponse `json:"stored"`
	Replayed  BalanceResponse `json:"replayed"`
	Movements int             `json:"movements"`
	Matches   bool            `json:"matches"`
}
