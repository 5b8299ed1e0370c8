// Package metrics exposes prometheus instrumentation for batch runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GamesProcessed counts (team, game) units computed since process start.
	GamesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ufametrics",
		Name:      "games_processed_total",
		Help:      "Number of (team, game) event streams processed.",
	})

	// UnknownEvents counts event codes outside the feed taxonomy. These are
	// skipped by the builders; the counter keeps the skips observable.
	UnknownEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ufametrics",
		Name:      "unknown_events_total",
		Help:      "Number of events with an unrecognized kind code.",
	})

	// OrphanEvents counts possession-changing events that arrived with no
	// open point/possession context.
	OrphanEvents = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ufametrics",
		Name:      "orphan_events_total",
		Help:      "Number of events skipped for lacking an open point or possession.",
	})
)

// Handler returns the /metrics scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
