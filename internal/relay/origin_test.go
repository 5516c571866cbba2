package relay

import (
	"context"
	"testing"
	"time"
)

func TestRegistry_CreateOrigin_UniqueIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := r.CreateOrigin(1, false)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate origin id %q", id)
		}
		seen[id] = struct{}{}
	}
	if r.Len() != 1000 {
		t.Fatalf("Len = %d, want 1000", r.Len())
	}
}

func TestRegistry_BindAndResolve(t *testing.T) {
	r := NewRegistry()
	id := r.CreateOrigin(7, false)

	r.Bind(id, 100, 555, false)
	r.Bind(id, 200, 777, false)

	if mid, ok := r.ResolveRecipient(id, 100); !ok || mid != 555 {
		t.Fatalf("ResolveRecipient(100) = %d,%v", mid, ok)
	}
	if mid, ok := r.ResolveRecipient(id, 200); !ok || mid != 777 {
		t.Fatalf("ResolveRecipient(200) = %d,%v", mid, ok)
	}
	if _, ok := r.ResolveRecipient(id, 300); ok {
		t.Fatal("unknown recipient must miss")
	}
	if sender, ok := r.Sender(id); !ok || sender != 7 {
		t.Fatalf("Sender = %d,%v", sender, ok)
	}
}

func TestRegistry_Bind_RecreatesEvictedOrigin(t *testing.T) {
	r := NewRegistry()
	id := r.CreateOrigin(7, false)

	// Force eviction, then bind as a late delivery would.
	r.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if n := r.Sweep(DefaultOriginTTL); n != 1 {
		t.Fatalf("Sweep = %d, want 1", n)
	}
	r.Bind(id, 100, 555, false)

	if mid, ok := r.ResolveRecipient(id, 100); !ok || mid != 555 {
		t.Fatalf("resurrected origin must resolve, got %d,%v", mid, ok)
	}
}

func TestRegistry_Sweep_EvictsOnlyAged(t *testing.T) {
	r := NewRegistry()
	base := time.Now()
	r.now = func() time.Time { return base }

	old := r.CreateOrigin(1, false)
	r.now = func() time.Time { return base.Add(23 * time.Hour) }
	fresh := r.CreateOrigin(2, false)

	r.now = func() time.Time { return base.Add(25 * time.Hour) }
	if n := r.Sweep(DefaultOriginTTL); n != 1 {
		t.Fatalf("Sweep = %d, want 1", n)
	}
	if _, ok := r.Sender(old); ok {
		t.Fatal("aged origin must be evicted")
	}
	if _, ok := r.Sender(fresh); !ok {
		t.Fatal("fresh origin must survive")
	}
}

func TestRegistry_Sweep_SkipsHeldLock(t *testing.T) {
	r := NewRegistry()
	base := time.Now()
	r.now = func() time.Time { return base }
	id := r.CreateOrigin(1, false)

	l := r.LockFor(id)
	l.Lock()
	defer l.Unlock()

	r.now = func() time.Time { return base.Add(48 * time.Hour) }
	if n := r.Sweep(DefaultOriginTTL); n != 0 {
		t.Fatalf("Sweep must skip a held origin, evicted %d", n)
	}
	if _, ok := r.Sender(id); !ok {
		t.Fatal("held origin must survive the sweep")
	}
}

func TestRegistry_Touch_RefreshesExpiry(t *testing.T) {
	r := NewRegistry()
	base := time.Now()
	r.now = func() time.Time { return base }
	id := r.CreateOrigin(1, false)

	r.now = func() time.Time { return base.Add(20 * time.Hour) }
	r.Touch(id, true)

	r.now = func() time.Time { return base.Add(30 * time.Hour) }
	if n := r.Sweep(DefaultOriginTTL); n != 0 {
		t.Fatalf("touched origin evicted (%d), expiry not refreshed", n)
	}
}

func TestRegistry_Run_StopsOnCancel(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, 10*time.Millisecond, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
