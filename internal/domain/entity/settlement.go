package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de liquidación; el tipo queda determinado por el documento origen.
const (
	SettlementKindContractDelivery   = "CONTRACT_DELIVERY"   // entrega contra contrato
	SettlementKindDepositLiquidation = "DEPOSIT_LIQUIDATION" // liquidación de depósito
	SettlementKindSaleLiquidation    = "SALE_LIQUIDATION"    // liquidación de venta
)

// Estados de liquidación.
const (
	SettlementStatusActive = "ACTIVE"
	SettlementStatusVoided = "VOIDED"
)

// Settlement detalle que consume parte de la cantidad de un documento origen.
type Settlement struct {
	ID          string
	Kind        string
	DocumentID  string
	Date        time.Time
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	Description string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsVoided indica si la liquidación fue anulada.
func (s *Settlement) IsVoided() bool { return s.Status == SettlementStatusVoided }
