package entity

import "time"

// Client productor o depositante (compras, contratos y depósitos).
type Client struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
}

// Buyer comprador de las ventas.
type Buyer struct {
	ID        string
	Name      string
	TaxID     string
	CreatedAt time.Time
}
