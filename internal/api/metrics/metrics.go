// Package metrics defines and registers all custom Prometheus metrics for
// the mess console. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messconsole"

// UpstreamRequestsTotal counts calls sent to the Mess Management backend.
// Labels:
//   - method: HTTP method of the outbound request
//   - status: upstream HTTP status, or "0" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests transmitted to the backend.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures backend round-trip latency.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Round-trip duration of backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ForcedLogoutsTotal counts sessions torn down because the backend rejected
// the bearer credential.
var ForcedLogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_logouts_total",
		Help:      "Total number of sessions invalidated by an upstream 401.",
	},
)

// LoginsTotal counts console login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of console login attempts, by result.",
	},
	[]string{"result"},
)

// AuditEntriesTotal counts audit entries handed to the dispatcher.
// Label:
//   - action: the admin action recorded (create, update, delete, ...)
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries recorded, by action.",
	},
	[]string{"action"},
)

// ObserveUpstream is the gateway's observer hook.
func ObserveUpstream(method string, status int, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	UpstreamRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
