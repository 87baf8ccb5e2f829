package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto a granel con sus factores de conversión.
// Tare es la tara por saco, Discount la fracción de descuento (0..1) y GoldFactor el divisor peso → oro.
type Product struct {
	ID         string
	Name       string
	Tare       decimal.Decimal
	Discount   decimal.Decimal
	GoldFactor decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
