package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidLimit = errors.New("rate limiter requires positive limit and window")

// Limiter allows at most limit hits per key in each window.
type Limiter struct {
	store  WindowStore
	limit  int64
	window time.Duration
}

func New(store WindowStore, limit int, window time.Duration) (*Limiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, ErrInvalidLimit
	}
	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}, nil
}

// Allow reports whether key is still within quota. Store failures deny the
// request and are returned to the caller.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	count, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

func (l *Limiter) Limit() int {
	return int(l.limit)
}

func (l *Limiter) Window() time.Duration {
	return l.window
}
