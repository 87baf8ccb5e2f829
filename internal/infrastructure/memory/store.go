package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

var _ ledger.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]entity.Product
	clients     map[string]entity.Client
	buyers      map[string]entity.Buyer
	documents   map[string]entity.Document
	settlements map[string]entity.Settlement
	movements   map[string]entity.Movement
	order       []string // ids de movimientos en orden de inserción
	balances    map[string]entity.Balance
}

func newState() *state {
	return &state{
		products:    map[string]entity.Product{},
		clients:     map[string]entity.Client{},
		buyers:      map[string]entity.Buyer{},
		documents:   map[string]entity.Document{},
		settlements: map[string]entity.Settlement{},
		movements:   map[string]entity.Movement{},
		balances:    map[string]entity.Balance{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:    maps.Clone(s.products),
		clients:     maps.Clone(s.clients),
		buyers:      maps.Clone(s.buyers),
		documents:   maps.Clone(s.documents),
		settlements: maps.Clone(s.settlements),
		movements:   maps.Clone(s.movements),
		order:       slices.Clone(s.order),
		balances:    maps.Clone(s.balances),
	}
}

// Store almacenamiento embebido del libro. Las transacciones se ejecutan de a una sobre una copia
// del estado que solo se publica si fn termina sin error, así que un fallo no deja rastro.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacenamiento vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a una copia privada del estado y la publica al terminar.
func (s *Store) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(reposOn(txView{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repos repositorios de lectura sobre el estado confirmado.
func (s *Store) Repos() ledger.Repos {
	return reposOn(s)
}

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: s} }

// Counterparts repositorio de clientes y compradores.
func (s *Store) Counterparts() *CounterpartRepo { return &CounterpartRepo{v: s} }

// AddProduct registra un producto (catálogo externo).
func (s *Store) AddProduct(p entity.Product) {
	s.with(func(st *state) { st.products[p.ID] = p })
}

// AddClient registra un cliente.
func (s *Store) AddClient(c entity.Client) {
	s.with(func(st *state) { st.clients[c.ID] = c })
}

// AddBuyer registra un comprador.
func (s *Store) AddBuyer(b entity.Buyer) {
	s.with(func(st *state) { st.buyers[b.ID] = b })
}

func (s *Store) with(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

// view da acceso al estado: el confirmado (con bloqueo) o la copia de una transacción en curso.
type view interface {
	with(fn func(st *state))
}

type txView struct {
	st *state
}

func (v txView) with(fn func(st *state)) { fn(v.st) }

func reposOn(v view) ledger.Repos {
	return ledger.Repos{
		Documents:   &DocumentRepo{v: v},
		Settlements: &SettlementRepo{v: v},
		Movements:   &MovementRepo{v: v},
		Balances:    &BalanceRepo{v: v},
	}
}
