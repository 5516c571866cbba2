// Package relay implements the cross-client fan-out engine behind the
// global chat: one logical broadcast is delivered as N independently
// addressed physical messages, and replies sent against any recipient's
// local copy are re-threaded onto every other recipient's own copy.
//
// The package is split into four cooperating pieces:
//
//   - Registry:    identity and lifecycle of a logical broadcast ("origin"),
//     a per-origin lock arena, and TTL-based eviction.
//   - DeliveryLog: per-recipient store of the physical messages the relay
//     has delivered, keyed by the recipient's own message id.
//   - Dispatcher:  orchestrates one broadcast, resolving per-recipient
//     reply targets and collecting a result per recipient.
//   - Annotator:   maintains and renders the visible reply counter on
//     previously delivered messages.
//
// External systems are consumed through the narrow interfaces below; the
// Telegram adapter in internal/transport satisfies all of them.
package relay

import "context"

// Transport delivers messages to a single recipient's chat session.
// Implementations own the wire format; the relay hands them final HTML.
type Transport interface {
	// SendMessage sends html to chatID and returns the physical message id
	// the recipient's session assigned to it. A non-zero replyTo threads
	// the new message beneath that local message id.
	SendMessage(ctx context.Context, chatID int64, html string, replyTo int) (int, error)

	// EditMessage replaces the text of an already delivered message in place.
	EditMessage(ctx context.Context, chatID int64, messageID int, html string) error

	// DeleteMessage removes a delivered message from the recipient's session.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// Directory enumerates every recipient known to the global chat.
type Directory interface {
	ListRecipients(ctx context.Context) ([]int64, error)
}

// ProfileResolver maps a chat id to a human-readable display name.
type ProfileResolver interface {
	DisplayName(ctx context.Context, chatID int64) (string, error)
}

// Record is one physical delivery: the copy of a logical message that a
// single recipient holds, under that recipient's own message id.
type Record struct {
	PhysicalID  int
	Header      string
	Body        string
	DisplayName string
	SourceChat  int64
	OriginID    string
	Emphasized  bool
}

// DeliveryResult reports the outcome of delivering one broadcast to one
// recipient. A failed delivery carries Err and never aborts the fan-out.
type DeliveryResult struct {
	Recipient   int64
	PhysicalID  int
	ReplyTarget int
	Err         error
}
