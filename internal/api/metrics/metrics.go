// Package metrics defines and registers the custom Prometheus metrics of the
// ordersdesk services. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; request-level HTTP metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordersdesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login calls by outcome.
// Labels:
//   - operation: "register" or "login"
//   - result: "ok", "conflict", "invalid", "unknown_user", "wrong_password" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts newly created orders.
// Label:
//   - status: the status the order was created with
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by initial status.",
	},
	[]string{"status"},
)

// IdempotentReplaysTotal counts creates answered from an earlier result.
// Label:
//   - resource: "orders" or "clients"
var IdempotentReplaysTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests replayed through an Idempotency-Key.",
	},
	[]string{"resource"},
)

// StatsDuration measures how long computing the dashboard statistics takes.
// Label:
//   - period: "7days" or "3months"
var StatsDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stats_duration_seconds",
		Help:      "Duration of dashboard statistics computation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"period"},
)
