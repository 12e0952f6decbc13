// Package metrics defines and registers all custom Prometheus metrics for the
// auth service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init time; the
// router exposes them on /metrics alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Unknown email and wrong password share
// the "denied" label so the metric cannot leak account existence either.
// Label:
//   - result: "success" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenResolutionsTotal counts bearer-token resolutions.
// Label:
//   - result: "success" or "rejected"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of bearer token resolutions, by result.",
	},
	[]string{"result"},
)
