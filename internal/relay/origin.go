// Package relay – Registry
//
// This file implements the Origin Registry: the table that gives every
// logical broadcast a stable identity (the origin id) that outlives its N
// per-recipient deliveries, plus the lazily allocated per-origin locks and
// the TTL sweep that keeps both maps bounded.
package relay

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultOriginTTL is how long an origin remains resolvable for reply
	// threading after its last delivery.
	DefaultOriginTTL = 24 * time.Hour

	// DefaultSweepInterval is the cadence of the background eviction pass.
	DefaultSweepInterval = time.Hour
)

// originEntry is the registry's view of one logical broadcast. recipients is
// a denormalized (recipient → physical id) cache of the DeliveryLog's
// records for this origin; both are written in the same critical section
// under the origin's lock so the cache never drifts from the log.
type originEntry struct {
	sender     int64
	emphasized bool
	recipients map[int64]int
	ts         time.Time
}

// Registry owns the origin table and the per-origin lock arena. Origins are
// independent of each other; there is no lock spanning two origins.
type Registry struct {
	mu      sync.Mutex
	origins map[string]*originEntry
	locks   map[string]*sync.Mutex

	// now is a clock seam for expiry tests.
	now func() time.Time
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		origins: make(map[string]*originEntry),
		locks:   make(map[string]*sync.Mutex),
		now:     time.Now,
	}
}

// CreateOrigin mints a fresh origin id for a new logical broadcast and
// registers it with an empty recipient map. Every broadcast gets its own
// origin, even a reply; physical message ids are never comparable across
// recipients, so the origin id is the only stable join key.
func (r *Registry) CreateOrigin(sender int64, emphasized bool) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.origins[id] = &originEntry{
		sender:     sender,
		emphasized: emphasized,
		recipients: make(map[int64]int),
		ts:         r.now(),
	}
	originsActive.Set(float64(len(r.origins)))
	r.mu.Unlock()
	return id
}

// Bind records that recipient holds physicalID as its local copy of the
// origin, refreshing the entry's timestamp and emphasis flag. The entry is
// recreated if the sweep evicted it between CreateOrigin and the first
// delivery; a resurrected origin simply starts a fresh recipient map.
//
// Callers must hold the origin's lock (LockFor) so this registry write and
// the matching DeliveryLog upsert land in one critical section.
func (r *Registry) Bind(originID string, recipient int64, physicalID int, emphasized bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.origins[originID]
	if !ok {
		e = &originEntry{recipients: make(map[int64]int)}
		r.origins[originID] = e
		originsActive.Set(float64(len(r.origins)))
	}
	e.recipients[recipient] = physicalID
	e.emphasized = emphasized
	e.ts = r.now()
}

// Touch refreshes an origin's timestamp and emphasis flag without binding
// a new recipient.
func (r *Registry) Touch(originID string, emphasized bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.origins[originID]; ok {
		e.emphasized = emphasized
		e.ts = r.now()
	}
}

// ResolveRecipient returns the physical message id that recipient holds for
// the origin. The lookup is O(1); it misses when the recipient never
// received a copy (joined later, or their delivery failed).
func (r *Registry) ResolveRecipient(originID string, recipient int64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.origins[originID]
	if !ok {
		return 0, false
	}
	mid, ok := e.recipients[recipient]
	return mid, ok
}

// Sender returns the authoring chat id of an origin.
func (r *Registry) Sender(originID string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.origins[originID]
	if !ok {
		return 0, false
	}
	return e.sender, true
}

// LockFor returns the mutual-exclusion handle for one origin, allocating it
// on first reference. All read-modify-write sequences on a single origin's
// state must run under this lock.
func (r *Registry) LockFor(originID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[originID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[originID] = l
	}
	return l
}

// Len reports the number of live origins.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.origins)
}

// Sweep evicts every origin older than ttl together with its lock entry and
// returns the eviction count. An origin whose lock is currently held is
// mid-delivery: it is skipped and retried on the next pass, never waited on.
func (r *Registry) Sweep(ttl time.Duration) int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.origins {
		if now.Sub(e.ts) <= ttl {
			continue
		}
		if l, ok := r.locks[id]; ok {
			if !l.TryLock() {
				continue
			}
			l.Unlock()
		}
		delete(r.origins, id)
		delete(r.locks, id)
		evicted++
	}
	if evicted > 0 {
		originEvictions.Add(float64(evicted))
		originsActive.Set(float64(len(r.origins)))
	}
	return evicted
}

// Run drives Sweep on a fixed interval until ctx is cancelled. It is meant
// to live for the whole process as a single background goroutine.
func (r *Registry) Run(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultOriginTTL
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(ttl); n > 0 {
				log.Debug().Int("evicted", n).Msg("origin sweep")
			}
		}
	}
}
