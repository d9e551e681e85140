// Package metrics defines and registers all custom Prometheus metrics for the
// streaming API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "streaming"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "inactive", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// TokensRevokedTotal counts tokens written to the denylist.
// Label:
//   - reason: "logout" or "password_change"
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of access tokens revoked before expiry.",
	},
	[]string{"reason"},
)

// ── Playback event metrics ────────────────────────────────────────────────────

// PlaybackEventsProcessedTotal counts progress beacons by outcome.
// Label:
//   - result: "ok" (applied, deduplicated, or dropped by rule) or "error"
var PlaybackEventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playback_events_processed_total",
		Help:      "Total number of playback progress events processed, labelled by result.",
	},
	[]string{"result"},
)

// PlaybackEventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var PlaybackEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "playback_events_dedup_total",
		Help:      "Total number of playback event deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PlaybackEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PlaybackEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "playback_events_queue_depth",
		Help:      "Current number of playback events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PlaybackEventDuration measures how long a single beacon takes to apply.
// Label:
//   - result: "ok" or "error", matching PlaybackEventsProcessedTotal
var PlaybackEventDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "playback_event_duration_seconds",
		Help:      "Duration of playback event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
