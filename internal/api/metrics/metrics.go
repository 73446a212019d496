// Package metrics defines and registers all custom Prometheus metrics for
// the Supply Hub marketplace API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "supplyhub"

// ── Authentication metrics ───────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure". Failure is a single bucket: the metric
//     must not distinguish unknown emails from wrong passwords.
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts completed registrations.
// Label:
//   - role: the role assigned at registration ("buyer" or "producer")
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ups_total",
		Help:      "Total number of completed registrations, by assigned role.",
	},
	[]string{"role"},
)

// SessionsRevokedTotal counts server-side session revocations.
// Label:
//   - reason: "sign_out" or "role_change"
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked server-side, by reason.",
	},
	[]string{"reason"},
)

// ── Authorization gate metrics ───────────────────────────────────────────────

// GateDecisionsTotal counts authorization gate outcomes.
// Labels:
//   - route_class: "authenticated" or "admin"
//   - decision: "allow", "redirect_login", "redirect_home", "deny_closed"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions, by route class and outcome.",
	},
	[]string{"route_class", "decision"},
)

// RateLimitedTotal counts requests rejected by the per-IP rate limiter.
// Label:
//   - path_class: "login", "register", or "general"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by path class.",
	},
	[]string{"path_class"},
)
