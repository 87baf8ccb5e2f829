package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/ColiJD/CafeHenola-sub001/internal/application/ledger"
	"github.com/ColiJD/CafeHenola-sub001/internal/domain"
	"github.com/ColiJD/CafeHenola-sub001/pkg/logger"
)

var _ ledger.Locker = (*Redis)(nil)

// Redis bloqueo distribuido por clave (varias instancias del API contra la misma BD).
type Redis struct {
	client *redis.Client
	locker *redislock.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedis conecta a REDIS_URL y verifica la conexión con un PING.
func NewRedis(ctx context.Context, url string, ttl time.Duration, log *logger.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{client: client, locker: redislock.New(client), ttl: ttl, log: log}, nil
}

// Lock obtiene la clave reintentando con backoff exponencial mientras ctx siga vivo.
// Si no se obtiene, el documento está ocupado y se responde como conflicto.
func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	l, err := r.locker.Obtain(ctx, "lock:"+key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.ExponentialBackoff(16*time.Millisecond, 512*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s en uso, reintente", domain.ErrConflict, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener bloqueo %s: %w", key, err)
	}
	return func() {
		// ctx puede estar cancelado al liberar; el TTL cubre el caso de fallo.
		if err := l.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el bloqueo redis")
		}
	}, nil
}

// Close cierra la conexión a Redis.
func (r *Redis) Close() error {
	return r.client.Close()
}
