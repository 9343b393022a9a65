// Package metrics defines and registers all custom Prometheus metrics for
// the DevConnect API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devconnect"

// TokenDebitsTotal counts ledger debit attempts.
// Labels:
//   - kind: "bid" or "project"
//   - result: "ok", "insufficient", or "error"
var TokenDebitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_debits_total",
		Help:      "Total number of token debit attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)

// TokenCreditsTotal counts successful ledger credits.
// Label:
//   - kind: "bid" or "project"
var TokenCreditsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_credits_total",
		Help:      "Total number of token credits applied from confirmed payments.",
	},
	[]string{"kind"},
)

// AuthRejectionsTotal counts access gate rejections.
// Label:
//   - reason: "unauthenticated", "user_not_found", or "forbidden"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the access gate.",
	},
	[]string{"reason"},
)

// SnapshotCacheTotal counts snapshot cache lookups.
// Label:
//   - result: "hit" or "miss"
var SnapshotCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_total",
		Help:      "Total number of authorization snapshot cache lookups, by result.",
	},
	[]string{"result"},
)

// PaymentSignatureFailuresTotal counts rejected payment confirmations.
// Forged or corrupted signatures are a security signal worth alerting on.
var PaymentSignatureFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_signature_failures_total",
		Help:      "Total number of payment confirmations rejected for a bad signature.",
	},
)

// WebhookQueueDepth tracks the number of captures waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var WebhookQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "webhook_queue_depth",
		Help:      "Current number of payment captures pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
