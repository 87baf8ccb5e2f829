package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento. Un movimiento anulado conserva su dirección original en PriorDirection.
const (
	DirectionIn     = "IN"
	DirectionOut    = "OUT"
	DirectionVoided = "VOIDED"
)

// Ámbitos de inventario.
const (
	ScopeOrganization = "ORGANIZATION"
	ScopeClient       = "CLIENT"
)

// Tipos de origen de un movimiento.
const (
	OriginDocument   = "DOCUMENT"
	OriginSettlement = "SETTLEMENT"
)

// Scope ámbito de inventario: toda la organización o el inventario en custodia de un cliente.
type Scope struct {
	Kind     string
	ClientID string // vacío para ScopeOrganization
}

// OrganizationScope ámbito de la organización.
func OrganizationScope() Scope { return Scope{Kind: ScopeOrganization} }

// ClientScope ámbito en custodia del cliente indicado.
func ClientScope(clientID string) Scope { return Scope{Kind: ScopeClient, ClientID: clientID} }

// Key identifica el ámbito en mapas y claves de bloqueo.
func (s Scope) Key() string {
	if s.Kind == ScopeClient {
		return s.Kind + ":" + s.ClientID
	}
	return s.Kind
}

// Movement asiento del kardex: una entrada o salida de cantidad contra un ámbito.
type Movement struct {
	ID             string
	Scope          Scope
	ProductID      string
	Direction      string
	PriorDirection string // dirección antes de anularse; vacío si sigue activo
	Quantity       decimal.Decimal
	Sacks          decimal.Decimal
	OriginType     string
	OriginID       string
	Note           string
	Date           time.Time
	CreatedAt      time.Time
	VoidedAt       *time.Time
}

// Delta efecto firmado del movimiento sobre el saldo (positivo entrada, negativo salida, cero anulado).
func (m *Movement) Delta() decimal.Decimal {
	switch m.Direction {
	case DirectionIn:
		return m.Quantity
	case DirectionOut:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}
