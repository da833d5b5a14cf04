package security

import (
	"math"
	"sync"
	"time"
)

// Decision reports the outcome of one rate limit take.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	ResetTime  time.Time
}

// RateLimitStore decides allow/deny for one request from an identifier.
// Take is atomic: the check and the increment happen under the same guard so
// concurrent requests for one key cannot both slip past the limit.
type RateLimitStore interface {
	Take(identifier string, window time.Duration, max int) Decision
}

type rateWindow struct {
	count     int
	resetTime time.Time
}

// MemoryStore is a fixed-window in-memory RateLimitStore. Idle windows are
// swept periodically so the key set stays bounded under identifier churn.
type MemoryStore struct {
	mu         sync.Mutex
	windows    map[string]*rateWindow
	takes      int
	sweepEvery int
	now        func() time.Time
}

// MemoryStoreOption customizes the store.
type MemoryStoreOption func(*MemoryStore)

// SweepEvery sets how many takes elapse between expired-window sweeps.
func SweepEvery(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.sweepEvery = n
		}
	}
}

// WithClock substitutes the time source. Tests use it to step through windows.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(options ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		windows:    make(map[string]*rateWindow),
		sweepEvery: 1024,
		now:        time.Now,
	}
	for _, option := range options {
		option(store)
	}
	return store
}

func (s *MemoryStore) Take(identifier string, window time.Duration, max int) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.takes++
	if s.takes >= s.sweepEvery {
		s.takes = 0
		for key, w := range s.windows {
			if now.After(w.resetTime) {
				delete(s.windows, key)
			}
		}
	}

	w, ok := s.windows[identifier]
	if !ok || now.After(w.resetTime) {
		w = &rateWindow{count: 1, resetTime: now.Add(window)}
		s.windows[identifier] = w
		return Decision{Allowed: true, Remaining: max - 1, ResetTime: w.resetTime}
	}

	if w.count >= max {
		retry := time.Duration(math.Ceil(w.resetTime.Sub(now).Seconds())) * time.Second
		if retry <= 0 {
			retry = time.Second
		}
		return Decision{Allowed: false, Remaining: 0, RetryAfter: retry, ResetTime: w.resetTime}
	}

	w.count++
	return Decision{Allowed: true, Remaining: max - w.count, ResetTime: w.resetTime}
}

// Len reports the live window count.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
