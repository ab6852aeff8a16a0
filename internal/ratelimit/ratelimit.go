// Package ratelimit throttles requests per key (client IP, user id).
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key is allowed. When it is
// not, retryAfter estimates how long the caller should wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}

// ======================================================
// Redis fixed window
// ======================================================

// RedisLimiter counts requests per key in fixed windows shared by every API
// instance.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter connects using a redis:// URL.
func NewRedisLimiter(url, prefix string, limit int, window time.Duration) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	return NewRedisLimiterWithClient(redis.NewClient(opt), prefix, limit, window), nil
}

func NewRedisLimiterWithClient(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return errors.Wrap(l.client.Ping(ctx).Err(), "ping redis")
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + ":" + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	if _, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	}); err != nil {
		return false, 0, errors.Wrap(err, "incr rate counter")
	}

	// a counter without expiry (new, or a previous EXPIRE failed) is re-armed
	left := ttl.Val()
	if left <= 0 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, errors.Wrap(err, "expire rate counter")
		}
		left = l.window
	}

	if incr.Val() <= l.limit {
		return true, 0, nil
	}
	return false, left, nil
}

// ======================================================
// In-process token buckets
// ======================================================

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// MemoryLimiter keeps a token bucket per key. It is used when no Redis is
// configured; limits then apply per process.
type MemoryLimiter struct {
	rate  rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// NewMemoryLimiter allows perMinute requests per key per minute, all of them
// available as an initial burst.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &MemoryLimiter{
		rate:    rate.Limit(float64(perMinute) / 60),
		burst:   perMinute,
		idle:    10 * time.Minute,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastAccess = now

	if b.limiter.AllowN(now, 1) {
		return true, 0, nil
	}

	secs := math.Ceil(1 / float64(l.rate))
	if secs < 1 {
		secs = 1
	}
	return false, time.Duration(secs) * time.Second, nil
}

// Len is the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.idle {
			delete(l.buckets, k)
		}
	}
}

var (
	_ Limiter = (*RedisLimiter)(nil)
	_ Limiter = (*MemoryLimiter)(nil)
)
