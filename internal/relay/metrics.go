// Package relay – Prometheus collectors
//
// Label cardinality is kept to the fixed outcome set; recipient ids never
// become labels.
package relay

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSent   = "sent"
	outcomeFailed = "failed"
)

var (
	// deliveries counts per-recipient delivery attempts by outcome.
	deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_deliveries_total",
			Help: "Per-recipient broadcast deliveries by outcome.",
		},
		[]string{"outcome"},
	)

	// threadedDeliveries counts deliveries that carried a resolved reply target.
	threadedDeliveries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_threaded_deliveries_total",
			Help: "Deliveries threaded beneath a recipient-local reply target.",
		},
	)

	// replyCountEdits counts reply-counter footer edits by outcome.
	replyCountEdits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_reply_count_edits_total",
			Help: "Reply-counter in-place edits by outcome.",
		},
		[]string{"outcome"},
	)

	// originsActive gauges the live origin table size.
	originsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relay_origins_active",
			Help: "Logical broadcasts currently resolvable for reply threading.",
		},
	)

	// originEvictions counts origins removed by the TTL sweep.
	originEvictions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "relay_origin_evictions_total",
			Help: "Origins evicted by the background sweep.",
		},
	)
)

func init() {
	prometheus.MustRegister(deliveries, threadedDeliveries, replyCountEdits, originsActive, originEvictions)
}
