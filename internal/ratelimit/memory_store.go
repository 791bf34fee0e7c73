package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count int64
	start time.Time
}

// MemoryStore keeps windows in process memory. Counts are not shared
// between instances.
type MemoryStore struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > window {
		for k, b := range s.buckets {
			if now.Sub(b.start) >= window {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok || now.Sub(b.start) >= window {
		b = &bucket{start: now}
		s.buckets[key] = b
	}
	b.count++

	return b.count, nil
}
