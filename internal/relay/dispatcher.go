// Package relay – Dispatcher
//
// The Dispatcher orchestrates one logical broadcast end to end: it resolves
// the author's reply reference against their own delivery log, mints the
// new origin, fans the message out to every known recipient with a
// recipient-local reply target, and bumps the reply counter on each
// successfully threaded target.
//
// Observability: Broadcast is OpenTelemetry-instrumented; spans carry the
// author id, origin id, and fan-out size.
package relay

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/iman0037/PotyBot/internal/markup"
)

// Dispatcher fans logical messages out across the recipient directory.
type Dispatcher struct {
	Registry  *Registry
	Log       *DeliveryLog
	Annotator *Annotator
	Transport Transport
	Directory Directory
	Profile   ProfileResolver

	// Limiter paces outbound sends so a large fan-out cannot trip the
	// platform's flood control. Nil disables pacing.
	Limiter *rate.Limiter
}

// NewDispatcher wires a Dispatcher and its Annotator over shared state.
func NewDispatcher(reg *Registry, dlog *DeliveryLog, tr Transport, dir Directory, profile ProfileResolver, sendsPerSecond float64, burst int) *Dispatcher {
	var lim *rate.Limiter
	if sendsPerSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(sendsPerSecond), burst)
	}
	return &Dispatcher{
		Registry:  reg,
		Log:       dlog,
		Annotator: NewAnnotator(dlog, tr),
		Transport: tr,
		Directory: dir,
		Profile:   profile,
		Limiter:   lim,
	}
}

// Broadcast delivers one logical message from author to every known
// recipient, including the author's own echo. replyRef, when non-zero, is
// the author's local message id of the message being replied to; each
// recipient's delivery is threaded beneath that recipient's own copy of the
// referenced message, never the author's. An unresolvable reference
// degrades to a plain broadcast.
//
// Fan-out is best effort: one recipient's transport failure is recorded in
// the returned results and never aborts delivery to the rest.
func (d *Dispatcher) Broadcast(ctx context.Context, author int64, body string, emphasized bool, replyRef int) []DeliveryResult {
	tr := otel.Tracer("relay/Dispatcher")
	ctx, span := tr.Start(ctx, "Broadcast",
		trace.WithAttributes(
			attribute.Int64("author.id", author),
			attribute.Bool("reply", replyRef != 0),
		),
	)
	defer span.End()

	// Resolve the author's local reference to the logical message being
	// replied to. The reference is the author's own physical id, so only
	// the author's log can decode it.
	var ref *Record
	if replyRef != 0 {
		if rec, ok := d.Log.FindByPhysicalID(author, replyRef); ok {
			ref = &rec
		} else {
			log.Debug().
				Int64("author", author).
				Int("reply_ref", replyRef).
				Msg("reply reference unresolved, broadcasting unthreaded")
		}
	}

	// A reply is itself a new logical message that may be replied to.
	originID := d.Registry.CreateOrigin(author, emphasized)
	span.SetAttributes(attribute.String("origin.id", originID))

	authorName, err := d.Profile.DisplayName(ctx, author)
	if err != nil || authorName == "" {
		authorName = markup.UnknownName
	}

	recipients, err := d.Directory.ListRecipients(ctx)
	if err != nil {
		log.Error().Err(err).Msg("recipient directory unavailable, broadcast dropped")
		return nil
	}
	span.SetAttributes(attribute.Int("fanout.size", len(recipients)))

	// The author's echo goes out first so their view settles immediately;
	// order across the other recipients is not significant.
	ordered := make([]int64, 0, len(recipients))
	ordered = append(ordered, author)
	for _, r := range recipients {
		if r != author {
			ordered = append(ordered, r)
		}
	}

	results := make([]DeliveryResult, 0, len(ordered))
	for _, recipient := range ordered {
		results = append(results, d.deliverOne(ctx, recipient, author, authorName, body, emphasized, originID, ref))
	}
	return results
}

// deliverOne sends one recipient their copy, records it under the origin
// lock, and bumps the reply counter when the delivery was threaded.
func (d *Dispatcher) deliverOne(ctx context.Context, recipient, author int64, authorName, body string, emphasized bool, originID string, ref *Record) DeliveryResult {
	res := DeliveryResult{Recipient: recipient}

	header := markup.HeaderSelf
	if recipient != author {
		header = markup.HeaderFrom(authorName)
	}

	// Reply-target remapping: the recipient's OWN physical id for the
	// referenced origin. Fast path through the registry map, defensive
	// scan of the recipient's log when the map misses. A miss on both
	// means "no threading available" for this recipient only.
	if ref != nil {
		if mid, ok := d.Registry.ResolveRecipient(ref.OriginID, recipient); ok {
			res.ReplyTarget = mid
		} else if rec, ok := d.Log.FindByOriginAndSource(recipient, ref.SourceChat, ref.OriginID); ok {
			res.ReplyTarget = rec.PhysicalID
		}
	}

	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx); err != nil {
			res.Err = err
			deliveries.WithLabelValues(outcomeFailed).Inc()
			return res
		}
	}

	html := markup.Render(header, body, emphasized)
	mid, err := d.Transport.SendMessage(ctx, recipient, html, res.ReplyTarget)
	if err != nil {
		res.Err = err
		deliveries.WithLabelValues(outcomeFailed).Inc()
		log.Warn().
			Err(err).
			Int64("recipient", recipient).
			Str("origin_id", originID).
			Msg("delivery failed, skipping recipient")
		return res
	}
	res.PhysicalID = mid

	// Record the delivery and the registry's recipient mapping in one
	// critical section so the denormalized map never drifts from the log.
	// The lock is per recipient-delivery, never held across the send.
	l := d.Registry.LockFor(originID)
	l.Lock()
	d.Log.Upsert(ctx, recipient, mid, header, body, author, originID, emphasized)
	d.Registry.Bind(originID, recipient, mid, emphasized)
	l.Unlock()

	deliveries.WithLabelValues(outcomeSent).Inc()

	if res.ReplyTarget != 0 {
		threadedDeliveries.Inc()
		d.Annotator.Bump(ctx, recipient, res.ReplyTarget)
	}
	return res
}
