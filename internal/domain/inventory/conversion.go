package inventory

import (
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RetentionRate tasa fija de retención sobre el oro neto.
var RetentionRate = decimal.RequireFromString("0.04")

// Conversion resultado de convertir una pesada bruta: oro neto, valor total y retención.
type Conversion struct {
	Net      decimal.Decimal
	Total    decimal.Decimal
	Retained decimal.Decimal
}

// NetFromGross convierte peso bruto y sacos a oro neto (servicio de dominio).
//
//	tara = sacos × product.Tare
//	pesoNeto = max(bruto − tara, 0) × (1 − descuento)
//	oro = CeilCents(pesoNeto / product.GoldFactor)
//
// Las entradas negativas se toman como cero. Un producto sin factores válidos produce
// una conversión en cero en vez de un error: la calculadora es orientativa.
func NetFromGross(grossWeight, sacks decimal.Decimal, product *entity.Product, unitPrice decimal.Decimal) Conversion {
	if !validFactors(product) {
		return Conversion{Net: decimal.Zero, Total: decimal.Zero, Retained: decimal.Zero}
	}
	grossWeight = clamp(grossWeight)
	sacks = clamp(sacks)
	unitPrice = clamp(unitPrice)

	netWeight := clamp(grossWeight.Sub(sacks.Mul(product.Tare)))
	if product.Discount.GreaterThan(decimal.Zero) {
		netWeight = clamp(netWeight.Mul(decimal.NewFromInt(1).Sub(product.Discount)))
	}
	net := CeilCents(netWeight.Div(product.GoldFactor))
	retained := clamp(net.Sub(net.Mul(RetentionRate))).Round(2)

	return Conversion{
		Net:      net,
		Total:    unitPrice.Mul(net),
		Retained: retained,
	}
}

// GrossFromNet calcula el peso bruto necesario para obtener al menos net de oro con los sacos dados.
// Redondea hacia arriba al centésimo para que NetFromGross sobre el resultado nunca quede por debajo de net.
func GrossFromNet(net, sacks decimal.Decimal, product *entity.Product) decimal.Decimal {
	if !validFactors(product) {
		return decimal.Zero
	}
	net = clamp(net)
	sacks = clamp(sacks)

	needed := net.Mul(product.GoldFactor)
	if product.Discount.GreaterThan(decimal.Zero) {
		needed = needed.Div(decimal.NewFromInt(1).Sub(product.Discount))
	}
	return needed.Add(sacks.Mul(product.Tare)).RoundCeil(2)
}

// CeilCents deja v en dos decimales subiendo al siguiente centésimo.
// No es un truncado: el negocio nunca entrega de menos por error de representación.
func CeilCents(v decimal.Decimal) decimal.Decimal {
	return v.RoundCeil(2)
}

func validFactors(p *entity.Product) bool {
	if p == nil {
		return false
	}
	if !p.GoldFactor.GreaterThan(decimal.Zero) {
		return false
	}
	if p.Tare.LessThan(decimal.Zero) {
		return false
	}
	if p.Discount.LessThan(decimal.Zero) || p.Discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return false
	}
	return true
}

func clamp(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}
