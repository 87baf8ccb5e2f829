package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cafe() *entity.Product {
	return &entity.Product{ID: "p1", Name: "Café pergamino", Tare: d("1"), Discount: d("0"), GoldFactor: d("1.15")}
}

func TestNetFromGross_CasoBase(t *testing.T) {
	c := inventory.NetFromGross(d("1000"), d("10"), cafe(), d("500"))

	assert.True(t, c.Net.Equal(d("860.87")), "oro: %s", c.Net)
	assert.True(t, c.Total.Equal(d("430435")), "total: %s", c.Total)
	assert.True(t, c.Retained.Equal(d("826.44")), "retención: %s", c.Retained)
}

func TestNetFromGross_Determinista(t *testing.T) {
	first := inventory.NetFromGross(d("1000"), d("10"), cafe(), d("500"))
	for i := 0; i < 50; i++ {
		again := inventory.NetFromGross(d("1000"), d("10"), cafe(), d("500"))
		require.True(t, first.Net.Equal(again.Net))
		require.True(t, first.Total.Equal(again.Total))
		require.True(t, first.Retained.Equal(again.Retained))
	}
}

func TestNetFromGross_ConDescuento(t *testing.T) {
	p := &entity.Product{Tare: d("0.5"), Discount: d("0.02"), GoldFactor: d("1")}
	c := inventory.NetFromGross(d("500"), d("4"), p, d("10"))

	// (500 − 2) × 0.98 = 488.04
	assert.True(t, c.Net.Equal(d("488.04")), "oro: %s", c.Net)
	assert.True(t, c.Total.Equal(d("4880.4")), "total: %s", c.Total)
}

func TestNetFromGross_RedondeaHaciaArriba(t *testing.T) {
	p := &entity.Product{Tare: d("0"), GoldFactor: d("3")}
	c := inventory.NetFromGross(d("100"), d("0"), p, d("1"))

	// 33.333… sube a 33.34, nunca 33.33
	assert.True(t, c.Net.Equal(d("33.34")), "oro: %s", c.Net)
}

func TestNetFromGross_TaraMayorQueBruto(t *testing.T) {
	c := inventory.NetFromGross(d("5"), d("10"), cafe(), d("500"))
	assert.True(t, c.Net.IsZero())
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.Retained.IsZero())
}

func TestNetFromGross_EntradasNegativasSeTomanComoCero(t *testing.T) {
	c := inventory.NetFromGross(d("-100"), d("-3"), cafe(), d("-5"))
	assert.True(t, c.Net.IsZero())
	assert.True(t, c.Total.IsZero())
}

func TestNetFromGross_ProductoInvalidoDevuelveCeros(t *testing.T) {
	cases := map[string]*entity.Product{
		"nil":             nil,
		"factor cero":     {Tare: d("1"), GoldFactor: d("0")},
		"factor negativo": {Tare: d("1"), GoldFactor: d("-1")},
		"descuento total": {Tare: d("1"), Discount: d("1"), GoldFactor: d("1.15")},
		"tara negativa":   {Tare: d("-1"), GoldFactor: d("1.15")},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			c := inventory.NetFromGross(d("1000"), d("10"), p, d("500"))
			assert.True(t, c.Net.IsZero())
			assert.True(t, c.Total.IsZero())
			assert.True(t, c.Retained.IsZero())
			assert.True(t, inventory.GrossFromNet(d("100"), d("10"), p).IsZero())
		})
	}
}

func TestGrossFromNet_IdaYVuelta(t *testing.T) {
	products := []*entity.Product{
		cafe(),
		{Tare: d("0.5"), Discount: d("0.02"), GoldFactor: d("1")},
		{Tare: d("0.8"), Discount: d("0.035"), GoldFactor: d("1.25")},
		{Tare: d("0"), Discount: d("0"), GoldFactor: d("3")},
	}
	nets := []string{"0.01", "1", "33.33", "488.04", "860.87", "1234.56"}
	sacks := []string{"0", "1", "10", "37"}

	for _, p := range products {
		for _, n := range nets {
			for _, s := range sacks {
				net := d(n)
				gross := inventory.GrossFromNet(net, d(s), p)
				back := inventory.NetFromGross(gross, d(s), p, d("1"))
				assert.True(t, back.Net.GreaterThanOrEqual(net),
					"factor %s net %s sacos %s: bruto %s devuelve %s", p.GoldFactor, n, s, gross, back.Net)
			}
		}
	}
}

func TestGrossFromNet_CasoBase(t *testing.T) {
	// 860.87 × 1.15 = 990.0005; + 10 de tara; sube a 1000.01
	gross := inventory.GrossFromNet(d("860.87"), d("10"), cafe())
	assert.True(t, gross.Equal(d("1000.01")), "bruto: %s", gross)
}

func TestCeilCents(t *testing.T) {
	assert.True(t, inventory.CeilCents(d("1.001")).Equal(d("1.01")))
	assert.True(t, inventory.CeilCents(d("1.00")).Equal(d("1")))
	assert.True(t, inventory.CeilCents(d("2.999")).Equal(d("3")))
}
