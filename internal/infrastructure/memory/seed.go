package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

// SeedDemo carga un catálogo mínimo para probar el API con STORE_DRIVER=memory.
func (s *Store) SeedDemo(now time.Time) {
	s.AddProduct(entity.Product{
		ID:         "cafe-pergamino",
		Name:       "Café pergamino seco",
		Tare:       decimal.RequireFromString("1"),
		Discount:   decimal.Zero,
		GoldFactor: decimal.RequireFromString("1.15"),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	s.AddProduct(entity.Product{
		ID:         "cafe-uva",
		Name:       "Café uva",
		Tare:       decimal.RequireFromString("0.5"),
		Discount:   decimal.RequireFromString("0.02"),
		GoldFactor: decimal.RequireFromString("5"),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	s.AddClient(entity.Client{ID: "cliente-demo", Name: "Productor demo", TaxID: "0801-1990-00001", CreatedAt: now})
	s.AddBuyer(entity.Buyer{ID: "comprador-demo", Name: "Exportadora demo", TaxID: "08019000000001", CreatedAt: now})
}
