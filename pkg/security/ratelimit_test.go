package security

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreAllowsUnderLimit(t *testing.T) {
	store := NewMemoryStore()
	for i := 0; i < 5; i++ {
		decision := store.Take("1.2.3.4", time.Minute, 5)
		if !decision.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if decision.Remaining != 5-i-1 {
			t.Fatalf("request %d: remaining = %d, want %d", i+1, decision.Remaining, 5-i-1)
		}
	}
}

func TestMemoryStoreDeniesOverLimit(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(WithClock(func() time.Time { return now }))

	for i := 0; i < 2; i++ {
		if d := store.Take("1.2.3.4", time.Minute, 2); !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	decision := store.Take("1.2.3.4", time.Minute, 2)
	if decision.Allowed {
		t.Fatal("third request should be denied")
	}
	if decision.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", decision.Remaining)
	}
	if decision.RetryAfter != time.Minute {
		t.Fatalf("retry after = %v, want 1m", decision.RetryAfter)
	}
}

func TestMemoryStoreWindowReset(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(WithClock(func() time.Time { return now }))

	store.Take("1.2.3.4", time.Minute, 1)
	if d := store.Take("1.2.3.4", time.Minute, 1); d.Allowed {
		t.Fatal("second request in window should be denied")
	}

	now = now.Add(time.Minute + time.Second)
	if d := store.Take("1.2.3.4", time.Minute, 1); !d.Allowed {
		t.Fatal("request after window reset should be allowed")
	}
}

func TestMemoryStoreIsolatesIdentifiers(t *testing.T) {
	store := NewMemoryStore()
	store.Take("1.2.3.4", time.Minute, 1)
	if d := store.Take("5.6.7.8", time.Minute, 1); !d.Allowed {
		t.Fatal("distinct identifier should have its own window")
	}
}

func TestMemoryStoreConcurrentTakes(t *testing.T) {
	store := NewMemoryStore()
	const limit = 50

	var wg sync.WaitGroup
	allowed := make(chan bool, limit*2)
	for i := 0; i < limit*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- store.Take("shared", time.Minute, limit).Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != limit {
		t.Fatalf("allowed %d concurrent takes, want exactly %d", count, limit)
	}
}

func TestMemoryStoreSweepsExpiredWindows(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(SweepEvery(10), WithClock(func() time.Time { return now }))

	for i := 0; i < 9; i++ {
		store.Take(fmt.Sprintf("ip-%d", i), time.Second, 5)
	}
	now = now.Add(time.Minute)
	store.Take("fresh", time.Second, 5)

	if got := store.Len(); got != 1 {
		t.Fatalf("live windows = %d, want 1 after sweep", got)
	}
}
