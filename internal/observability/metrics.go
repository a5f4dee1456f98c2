// Package observability registers prometheus instrumentation for the
// client's refresh and mutation traffic.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	fetchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_client",
		Subsystem: "roster",
		Name:      "fetches_total",
		Help:      "Roster fetch attempts partitioned by outcome.",
	}, []string{"outcome"})

	mutationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_client",
		Subsystem: "actions",
		Name:      "mutations_total",
		Help:      "Signup/unregister attempts partitioned by action and outcome.",
	}, []string{"action", "outcome"})

	lastRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activities_client",
		Subsystem: "roster",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent fully rendered refresh cycle.",
	})
)

func init() {
	prometheus.MustRegister(fetchCounter, mutationCounter, lastRefreshGauge)
}

func outcomeLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordFetch counts one roster fetch attempt.
func RecordFetch(ok bool) {
	fetchCounter.WithLabelValues(outcomeLabel(ok)).Inc()
}

// RecordMutation counts one signup or unregister attempt.
func RecordMutation(action string, ok bool) {
	mutationCounter.WithLabelValues(action, outcomeLabel(ok)).Inc()
}

// RecordRefresh updates the refresh watermark gauge.
func RecordRefresh(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastRefreshGauge.Set(float64(ts.Unix()))
}
