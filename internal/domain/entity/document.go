package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento primario.
const (
	DocumentKindPurchase = "PURCHASE" // compra directa
	DocumentKindContract = "CONTRACT" // contrato a futuro
	DocumentKindDeposit  = "DEPOSIT"  // depósito de cliente
	DocumentKindSale     = "SALE"     // venta a comprador
)

// Estados de documento.
const (
	DocumentStatusActive  = "ACTIVE"
	DocumentStatusPending = "PENDING" // solo contratos con entregas por recibir
	DocumentStatusVoided  = "VOIDED"
)

// Document cabecera de compra, contrato, depósito o venta.
// CounterpartID es un cliente (compra, contrato, depósito) o un comprador (venta).
// GrossWeight, Sacks y Retained solo se llenan cuando el documento nace de una pesada.
type Document struct {
	ID            string
	Kind          string
	Date          time.Time
	ProductID     string
	CounterpartID string
	Quantity      decimal.Decimal // cantidad neta (oro)
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	GrossWeight   decimal.Decimal
	Sacks         decimal.Decimal
	Retained      decimal.Decimal
	Description   string
	Status        string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsVoided indica si el documento fue anulado.
func (d *Document) IsVoided() bool { return d.Status == DocumentStatusVoided }

// ValidDocumentKind indica si kind es uno de los cuatro documentos primarios.
func ValidDocumentKind(kind string) bool {
	switch kind {
	case DocumentKindPurchase, DocumentKindContract, DocumentKindDeposit, DocumentKindSale:
		return true
	}
	return false
}
