// Package metrics defines and registers all custom Prometheus metrics for the
// registro API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registro"

// ── Authentication / authorization ───────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials.
// Label:
//   - reason: "malformed_header", "invalid_token", "missing_claims",
//     "revoked", "denylist_unavailable"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected during authentication.",
	},
	[]string{"reason"},
)

// AuthzDeniedTotal counts requests denied by the authorization gate.
// Label:
//   - reason: "unauthenticated" or "read_only_role"
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// ── Store routing ─────────────────────────────────────────────────────────────

// RoutingFallbackTotal counts operations that fell back to the primary store
// because no identity was installed on the request context. A nonzero value
// usually means an authentication wiring problem upstream.
var RoutingFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "routing_fallback_total",
		Help:      "Total number of store-routing decisions that fell back to the primary store.",
	},
)

// ── Domain ────────────────────────────────────────────────────────────────────

// TransacoesCreatedTotal counts newly created transactions.
// Label:
//   - tipo: "entrada" or "saida"
var TransacoesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transacoes_created_total",
		Help:      "Total number of transactions created, by direction.",
	},
	[]string{"tipo"},
)

// NotificacoesPublishedTotal counts notifications successfully handed to the
// message queue.
var NotificacoesPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notificacoes_published_total",
		Help:      "Total number of notifications published to the fan-out queue.",
	},
)
