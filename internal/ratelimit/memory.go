package ratelimit

import (
	"context"
	"time"

	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// MemoryLimiter bounds keyed request rates with ulule's in-process store.
// The store's cleanup goroutine evicts expired counters, so one-off keys do
// not accumulate.
type MemoryLimiter struct {
	store limiter.Store
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{store: memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "storefront:ratelimit",
		CleanUpInterval: time.Minute,
	})}
}

// Allow registers a hit for the key and reports whether it stays within the
// limit. Non-positive max or window disables limiting.
func (l *MemoryLimiter) Allow(ctx context.Context, key string, window time.Duration, max int) (bool, int, time.Time, error) {
	if max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}
	lctx, err := l.store.Get(ctx, key, limiter.Rate{Period: window, Limit: int64(max)})
	if err != nil {
		return false, 0, time.Time{}, err
	}
	return !lctx.Reached, int(lctx.Remaining), time.Unix(lctx.Reset, 0), nil
}
