package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// El TTL se fija solo con el primer fallo: la ventana corre desde ahí.
const redisLoginFailureScript = `
local failures = redis.call("INCR", KEYS[1])
if failures == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return failures
`

const redisLoginTimeout = 500 * time.Millisecond

type redisLoginStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisLoginRateLimiter struct {
	store  redisLoginStore
	window time.Duration
	max    int
	prefix string
}

// NewRedisLoginRateLimiter comparte los fallos de login entre réplicas vía Redis.
func NewRedisLoginRateLimiter(client *redis.Client, window time.Duration, max int) LoginRateLimiter {
	if client == nil {
		return nil
	}
	return newRedisLoginRateLimiter(client, window, max)
}

func newRedisLoginRateLimiter(store redisLoginStore, window time.Duration, max int) *redisLoginRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginRateLimiter{
		store:  store,
		window: window,
		max:    max,
		prefix: "login:fail:",
	}
}

// Allow solo lee el contador; ante errores de Redis deja pasar.
func (l *redisLoginRateLimiter) Allow(key string) bool {
	if l == nil || l.store == nil {
		return true
	}
	key = normalizeLimiterKey(key)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLoginTimeout)
	defer cancel()

	failures, err := l.store.Get(ctx, l.prefix+key).Int()
	if err != nil {
		return true
	}
	return failures < l.max
}

func (l *redisLoginRateLimiter) RecordFailure(key string) {
	if l == nil || l.store == nil {
		return
	}
	key = normalizeLimiterKey(key)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLoginTimeout)
	defer cancel()

	_ = l.store.Eval(ctx, redisLoginFailureScript, []string{l.prefix + key}, l.window.Milliseconds()).Err()
}

func (l *redisLoginRateLimiter) Reset(key string) {
	if l == nil || l.store == nil {
		return
	}
	key = normalizeLimiterKey(key)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLoginTimeout)
	defer cancel()

	_ = l.store.Del(ctx, l.prefix+key).Err()
}
