package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
)

var _ ledger.Locker = (*Local)(nil)

// Local bloqueo por clave dentro del proceso. Para una sola instancia del API.
type Local struct {
	mu   sync.Mutex
	keys map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocal crea el bloqueo en proceso.
func NewLocal() *Local {
	return &Local{keys: make(map[string]*slot)}
}

// Lock espera la clave o hasta que ctx termine. unlock es idempotente.
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.keys[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.keys[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, fmt.Errorf("esperando bloqueo %s: %w", key, ctx.Err())
	}
}

func (l *Local) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.keys, key)
	}
}

// size claves con titulares o esperas; solo para tests.
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
