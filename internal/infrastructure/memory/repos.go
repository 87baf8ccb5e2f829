package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/repository"
)

var (
	_ repository.DocumentRepository    = (*DocumentRepo)(nil)
	_ repository.SettlementRepository  = (*SettlementRepo)(nil)
	_ repository.MovementRepository    = (*MovementRepo)(nil)
	_ repository.BalanceRepository     = (*BalanceRepo)(nil)
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.CounterpartRepository = (*CounterpartRepo)(nil)
)

// DocumentRepo documentos en memoria.
type DocumentRepo struct{ v view }

func (r *DocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	var err error
	r.v.with(func(st *state) {
		if _, ok := st.documents[doc.ID]; ok {
			err = fmt.Errorf("%w: documento %s duplicado", domain.ErrInternal, doc.ID)
			return
		}
		st.documents[doc.ID] = *doc
	})
	return err
}

func (r *DocumentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	r.v.with(func(st *state) {
		if d, ok := st.documents[id]; ok {
			out = &d
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo propio: Store.Run ya serializa las transacciones.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *DocumentRepo) UpdateStatus(_ context.Context, doc *entity.Document) error {
	var err error
	r.v.with(func(st *state) {
		cur, ok := st.documents[doc.ID]
		if !ok {
			err = fmt.Errorf("%w: documento %s", domain.ErrNotFound, doc.ID)
			return
		}
		cur.Status = doc.Status
		cur.UpdatedAt = doc.UpdatedAt
		st.documents[doc.ID] = cur
	})
	return err
}

// SettlementRepo liquidaciones en memoria.
type SettlementRepo struct{ v view }

func (r *SettlementRepo) Create(_ context.Context, s *entity.Settlement) error {
	var err error
	r.v.with(func(st *state) {
		if _, ok := st.documents[s.DocumentID]; !ok {
			err = fmt.Errorf("%w: documento %s", domain.ErrNotFound, s.DocumentID)
			return
		}
		st.settlements[s.ID] = *s
	})
	return err
}

func (r *SettlementRepo) GetByID(_ context.Context, id string) (*entity.Settlement, error) {
	var out *entity.Settlement
	r.v.with(func(st *state) {
		if s, ok := st.settlements[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SettlementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Settlement, error) {
	return r.GetByID(ctx, id)
}

func (r *SettlementRepo) UpdateStatus(_ context.Context, s *entity.Settlement) error {
	var err error
	r.v.with(func(st *state) {
		cur, ok := st.settlements[s.ID]
		if !ok {
			err = fmt.Errorf("%w: liquidación %s", domain.ErrNotFound, s.ID)
			return
		}
		cur.Status = s.Status
		cur.UpdatedAt = s.UpdatedAt
		st.settlements[s.ID] = cur
	})
	return err
}

func (r *SettlementRepo) ListByDocument(_ context.Context, documentID string, onlyActive bool) ([]*entity.Settlement, error) {
	var out []*entity.Settlement
	r.v.with(func(st *state) {
		for _, s := range st.settlements {
			if s.DocumentID != documentID || (onlyActive && s.IsVoided()) {
				continue
			}
			s := s
			out = append(out, &s)
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SettlementRepo) SumActiveByDocument(_ context.Context, documentID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	r.v.with(func(st *state) {
		for _, s := range st.settlements {
			if s.DocumentID == documentID && !s.IsVoided() {
				sum = sum.Add(s.Quantity)
			}
		}
	})
	return sum, nil
}

// MovementRepo kardex en memoria.
type MovementRepo struct{ v view }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.v.with(func(st *state) {
		st.movements[m.ID] = *m
		st.order = append(st.order, m.ID)
	})
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.v.with(func(st *state) {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *MovementRepo) FindActiveByOrigin(_ context.Context, originType, originID string) (*entity.Movement, error) {
	var out *entity.Movement
	r.v.with(func(st *state) {
		for _, id := range st.order {
			m := st.movements[id]
			if m.OriginType == originType && m.OriginID == originID && m.Direction != entity.DirectionVoided {
				out = &m
				return
			}
		}
	})
	return out, nil
}

func (r *MovementRepo) MarkVoided(_ context.Context, m *entity.Movement) error {
	var err error
	r.v.with(func(st *state) {
		cur, ok := st.movements[m.ID]
		if !ok {
			err = fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, m.ID)
			return
		}
		cur.Direction = m.Direction
		cur.PriorDirection = m.PriorDirection
		cur.VoidedAt = m.VoidedAt
		st.movements[m.ID] = cur
	})
	return err
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.v.with(func(st *state) {
		for _, id := range st.order {
			m := st.movements[id]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.Scope != "" && m.Scope.Kind != f.Scope {
				continue
			}
			if f.ClientID != "" && m.Scope.ClientID != f.ClientID {
				continue
			}
			if f.OnlyActive && m.Direction == entity.DirectionVoided {
				continue
			}
			out = append(out, &m)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// BalanceRepo saldos en memoria.
type BalanceRepo struct{ v view }

func balanceKey(scope entity.Scope, productID string) string {
	return scope.Key() + "|" + productID
}

func (r *BalanceRepo) Get(_ context.Context, scope entity.Scope, productID string) (*entity.Balance, error) {
	out := &entity.Balance{Scope: scope, ProductID: productID, Inflow: decimal.Zero, Outflow: decimal.Zero}
	r.v.with(func(st *state) {
		if b, ok := st.balances[balanceKey(scope, productID)]; ok {
			out = &b
		}
	})
	return out, nil
}

func (r *BalanceRepo) GetForUpdate(ctx context.Context, scope entity.Scope, productID string) (*entity.Balance, error) {
	return r.Get(ctx, scope, productID)
}

func (r *BalanceRepo) Apply(_ context.Context, scope entity.Scope, productID string, inflowDelta, outflowDelta decimal.Decimal) error {
	r.v.with(func(st *state) {
		key := balanceKey(scope, productID)
		b, ok := st.balances[key]
		if !ok {
			b = entity.Balance{Scope: scope, ProductID: productID, Inflow: decimal.Zero, Outflow: decimal.Zero}
		}
		b.Inflow = b.Inflow.Add(inflowDelta)
		b.Outflow = b.Outflow.Add(outflowDelta)
		st.balances[key] = b
	})
	return nil
}

func (r *BalanceRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Balance, error) {
	var out []*entity.Balance
	r.v.with(func(st *state) {
		for _, b := range st.balances {
			if b.ProductID == productID {
				b := b
				out = append(out, &b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Scope.Key() < out[j].Scope.Key() })
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.with(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// CounterpartRepo clientes y compradores en memoria.
type CounterpartRepo struct{ v view }

func (r *CounterpartRepo) GetClient(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	r.v.with(func(st *state) {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CounterpartRepo) GetBuyer(_ context.Context, id string) (*entity.Buyer, error) {
	var out *entity.Buyer
	r.v.with(func(st *state) {
		if b, ok := st.buyers[id]; ok {
			out = &b
		}
	})
	return out, nil
}
