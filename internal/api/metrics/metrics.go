// Package metrics defines the custom Prometheus metrics of the todo API.
// Metric names, labels and help strings live here and nowhere else.
//
// All metrics register with the default Prometheus registry on import via
// promauto; /metrics serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo_api"

// Result label values shared by the auth counters.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts POST /token attempts.
// Label:
//   - result: "success", "failure" (bad credentials) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts POST /register attempts.
// Label:
//   - result: "success", "rejected" (duplicate or invalid input) or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts protected requests turned away by the auth middleware.
var TokenRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected for a missing or invalid bearer token.",
	},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodosCreatedTotal counts successful POST /todos responses.
// Label:
//   - replayed: "true" when an Idempotency-Key matched an earlier create
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todo creations, split by idempotent replay.",
	},
	[]string{"replayed"},
)

// Collectors returns every metric above, for registering with a registry
// other than the default one.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginsTotal,
		RegistrationsTotal,
		TokenRejectionsTotal,
		TodosCreatedTotal,
	}
}
