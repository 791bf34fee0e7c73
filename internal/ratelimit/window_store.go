package ratelimit

import (
	"context"
	"time"
)

// WindowStore counts hits per key inside fixed time windows.
type WindowStore interface {
	// Increment records one hit for key in the window containing now and
	// returns the number of hits recorded in that window so far.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
