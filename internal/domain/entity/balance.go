package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance saldo por (ámbito, producto): entradas y salidas acumuladas.
type Balance struct {
	Scope     Scope
	ProductID string
	Inflow    decimal.Decimal
	Outflow   decimal.Decimal
	UpdatedAt time.Time
}

// Net devuelve entradas menos salidas.
func (b *Balance) Net() decimal.Decimal {
	return b.Inflow.Sub(b.Outflow)
}
