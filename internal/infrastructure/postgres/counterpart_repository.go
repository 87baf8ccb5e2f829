package postgres

import (
	"context"
	"fmt"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

var _ repository.CounterpartRepository = (*CounterpartRepo)(nil)

// CounterpartRepo lectura de clientes y compradores.
type CounterpartRepo struct {
	q Querier
}

// NewCounterpartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartRepository(q Querier) *CounterpartRepo {
	return &CounterpartRepo{q: q}
}

// GetClient obtiene un cliente por ID; nil si no existe.
func (r *CounterpartRepo) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx,
		`SELECT id, name, tax_id, created_at FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.TaxID, &c.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// GetBuyer obtiene un comprador por ID; nil si no existe.
func (r *CounterpartRepo) GetBuyer(ctx context.Context, id string) (*entity.Buyer, error) {
	var b entity.Buyer
	err := r.q.QueryRow(ctx,
		`SELECT id, name, tax_id, created_at FROM buyers WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.TaxID, &b.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get buyer: %w", err)
	}
	return &b, nil
}
