// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// SignupsRequestedTotal counts credential requests that stored a fresh
// one-time secret.
var SignupsRequestedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_requested_total",
		Help:      "Total number of signup requests that issued a one-time secret.",
	},
)

// LoginExchangesTotal counts credential exchange attempts.
// Label:
//   - outcome: "success", "invalid", or "not_found"
var LoginExchangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_exchanges_total",
		Help:      "Total number of one-time secret exchange attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthzDenialsTotal counts requests rejected by an access policy.
// Labels:
//   - policy: policy name (e.g. "admin_only")
//   - level: "collection" or "object"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by an access policy.",
	},
	[]string{"policy", "level"},
)

// MailsDispatchedTotal counts outbound OTP mails handed to the mailer.
// Label:
//   - outcome: "sent" or "error"
var MailsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_dispatched_total",
		Help:      "Total number of OTP mails dispatched, by outcome.",
	},
	[]string{"outcome"},
)
