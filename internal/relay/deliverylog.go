// Package relay – DeliveryLog
//
// The DeliveryLog is the authoritative per-recipient store of everything
// the relay has delivered. Each record is keyed by (recipient, physical
// message id) and carries the origin id that joins it to the other
// recipients' copies of the same logical message.
//
// The log resolves the sender's display name once at upsert time and
// caches it into the record so later re-renders (reply-count edits) never
// hit the profile service again.
package relay

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/iman0037/PotyBot/internal/markup"
)

// DeliveryLog stores delivery records per recipient. It is safe for
// concurrent use; mutations for one recipient only ever originate from that
// recipient's deliveries, but a single guard still serializes upserts that
// race under different origins.
type DeliveryLog struct {
	mu      sync.RWMutex
	byChat  map[int64]map[int]*Record
	profile ProfileResolver
}

// NewDeliveryLog constructs an empty log resolving names through profile.
func NewDeliveryLog(profile ProfileResolver) *DeliveryLog {
	return &DeliveryLog{
		byChat:  make(map[int64]map[int]*Record),
		profile: profile,
	}
}

// Upsert inserts or overwrites the record for (recipient, physicalID).
// Overwriting in place keeps the invariant of at most one record per
// (origin, recipient) pair when a delivery is later edited. The returned
// value is a copy; the log retains ownership of the stored record.
func (l *DeliveryLog) Upsert(ctx context.Context, recipient int64, physicalID int, header, body string, sourceChat int64, originID string, emphasized bool) Record {
	name, err := l.profile.DisplayName(ctx, sourceChat)
	if err != nil || name == "" {
		name = markup.UnknownName
	}

	rec := &Record{
		PhysicalID:  physicalID,
		Header:      header,
		Body:        body,
		DisplayName: name,
		SourceChat:  sourceChat,
		OriginID:    originID,
		Emphasized:  emphasized,
	}

	l.mu.Lock()
	msgs, ok := l.byChat[recipient]
	if !ok {
		msgs = make(map[int]*Record)
		l.byChat[recipient] = msgs
	}
	msgs[physicalID] = rec
	l.mu.Unlock()

	return *rec
}

// FindByPhysicalID resolves a recipient's local message id to its record.
func (l *DeliveryLog) FindByPhysicalID(recipient int64, physicalID int) (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if rec, ok := l.byChat[recipient][physicalID]; ok {
		return *rec, true
	}
	return Record{}, false
}

// FindByOriginAndSource scans the recipient's records for one matching the
// given author and origin. This is the defensive slow path used when the
// Registry's recipient map misses even though a record exists; a hit here
// is logged because it indicates the two stores disagreed.
func (l *DeliveryLog) FindByOriginAndSource(recipient, sourceChat int64, originID string) (Record, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, rec := range l.byChat[recipient] {
		if rec.SourceChat == sourceChat && rec.OriginID == originID {
			log.Warn().
				Int64("recipient", recipient).
				Str("origin_id", originID).
				Msg("reply target resolved by log scan, registry map missed")
			return *rec, true
		}
	}
	return Record{}, false
}

// Count reports the number of records held for one recipient.
func (l *DeliveryLog) Count(recipient int64) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byChat[recipient])
}
