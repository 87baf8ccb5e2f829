package dto

import "github.com/shopspring/decimal"

// NetQuoteRequest body para POST /api/conversion/net.
type NetQuoteRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	Sacks       decimal.Decimal `json:"sacks"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// NetQuoteResponse oro neto, total y retención de una pesada.
type NetQuoteResponse struct {
	Net      decimal.Decimal `json:"net"`
	Total    decimal.Decimal `json:"total"`
	Retained decimal.Decimal `json:"retained"`
}

// GrossQuoteRequest body para POST /api/conversion/gross.
type GrossQuoteRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Net       decimal.Decimal `json:"net"`
	Sacks     decimal.Decimal `json:"sacks"`
}

// GrossQuoteResponse peso bruto necesario.
type GrossQuoteResponse struct {
	GrossWeight decimal.Decimal `json:"gross_weight"`
}
