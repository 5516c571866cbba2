// Package relay – Annotator
//
// The Annotator keeps the per-message reply counters and pushes the visible
// "⤶n" footer onto already-delivered messages via an in-place edit. The
// counter is pure display state: it lives only in memory, and a failed edit
// is cosmetic, never data loss.
package relay

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/iman0037/PotyBot/internal/markup"
)

// counterKey identifies one counter: a recipient's local copy of a message.
type counterKey struct {
	recipient  int64
	physicalID int
}

// Annotator increments and renders reply counters. Safe for concurrent use.
type Annotator struct {
	mu     sync.Mutex
	counts map[counterKey]int

	log *DeliveryLog
	tr  Transport
}

// NewAnnotator constructs an Annotator reading records from dlog and
// pushing edits through tr.
func NewAnnotator(dlog *DeliveryLog, tr Transport) *Annotator {
	return &Annotator{
		counts: make(map[counterKey]int),
		log:    dlog,
		tr:     tr,
	}
}

// Bump increments the reply counter for (recipient, physicalID) and, once
// the count exceeds one, re-renders the target message with the localized
// counter footer. A missing record is a no-op; an edit failure is logged
// and swallowed, the incremented counter simply shows on the next bump.
func (a *Annotator) Bump(ctx context.Context, recipient int64, physicalID int) {
	rec, ok := a.log.FindByPhysicalID(recipient, physicalID)
	if !ok {
		return
	}

	key := counterKey{recipient: recipient, physicalID: physicalID}
	a.mu.Lock()
	a.counts[key]++
	n := a.counts[key]
	a.mu.Unlock()

	if n <= 1 {
		return
	}

	header := rec.Header
	if header == "" {
		if recipient == rec.SourceChat {
			header = markup.HeaderSelf
		} else {
			header = markup.HeaderFrom(rec.DisplayName)
		}
	}

	html := markup.RenderWithReplyCount(header, rec.Body, rec.Emphasized, n)
	if err := a.tr.EditMessage(ctx, recipient, physicalID, html); err != nil {
		replyCountEdits.WithLabelValues(outcomeFailed).Inc()
		log.Warn().
			Err(err).
			Int64("recipient", recipient).
			Int("message_id", physicalID).
			Msg("reply count edit failed")
		return
	}
	replyCountEdits.WithLabelValues(outcomeSent).Inc()
}

// Count returns the current counter value for a recipient's message.
func (a *Annotator) Count(recipient int64, physicalID int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[counterKey{recipient: recipient, physicalID: physicalID}]
}
