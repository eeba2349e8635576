package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestFixedWindowSequence(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return current })

	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, limiter.Check("user-1:/admin/users/approve", 3, time.Second).Allowed)
	}
	want := []bool{true, true, true, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d: allowed=%v, want %v", i+1, got[i], want[i])
		}
	}
}

func TestWindowExpiryStartsFreshBucket(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return current })

	for i := 0; i < 3; i++ {
		limiter.Check("k", 3, time.Second)
	}
	if limiter.Check("k", 3, time.Second).Allowed {
		t.Fatal("expected exhausted window to deny")
	}

	current = current.Add(time.Second)
	result := limiter.Check("k", 3, time.Second)
	if !result.Allowed {
		t.Fatal("expected fresh window to allow")
	}
	if result.Remaining != 2 {
		t.Fatalf("fresh window remaining = %d, want 2", result.Remaining)
	}
	if !result.ResetAt.Equal(current.Add(time.Second)) {
		t.Fatalf("fresh window reset_at = %v, want %v", result.ResetAt, current.Add(time.Second))
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	limiter := New(nil)
	for i := 0; i < 10; i++ {
		result := limiter.Check("k", 2, time.Minute)
		if result.Remaining < 0 {
			t.Fatalf("remaining went negative: %d", result.Remaining)
		}
	}
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := New(nil)
	if !limiter.Check("a", 1, time.Minute).Allowed {
		t.Fatal("first call on a should be allowed")
	}
	if limiter.Check("a", 1, time.Minute).Allowed {
		t.Fatal("second call on a should be denied")
	}
	if !limiter.Check("b", 1, time.Minute).Allowed {
		t.Fatal("first call on b should be allowed")
	}
}

func TestConcurrentBurstLosesNoDecrements(t *testing.T) {
	limiter := New(nil)
	const limit = 50
	const callers = 200

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check("burst", limit, time.Minute).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Fatalf("allowed %d calls under burst, want exactly %d", allowed, limit)
	}
}
