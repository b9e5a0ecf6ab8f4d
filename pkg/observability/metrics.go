// Package observability exports engine lifecycle activity as Prometheus
// metrics. Wire Metrics.Hooks() into the engine and mount promhttp on the
// transport of your choice.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vitaehq/converse/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	sessionsStarted    prometheus.Counter
	sessionsCompleted  prometheus.Counter
	validationFailures prometheus.Counter
	branchErrors       prometheus.Counter
	nodeVisits         *prometheus.CounterVec
	actionDuration     prometheus.Histogram
}

// NewMetrics creates and registers the collectors. Pass a dedicated
// registry in tests; prometheus.DefaultRegisterer in binaries.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "converse",
			Name:      "sessions_started_total",
			Help:      "Number of sessions initialized.",
		}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "converse",
			Name:      "sessions_completed_total",
			Help:      "Number of sessions that reached an end node.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "converse",
			Name:      "validation_failures_total",
			Help:      "Number of rejected user answers.",
		}),
		branchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "converse",
			Name:      "branch_errors_total",
			Help:      "Number of unresolvable condition branches.",
		}),
		nodeVisits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "converse",
			Name:      "node_visits_total",
			Help:      "Node entries during traversal, by node type.",
		}, []string{"type"}),
		actionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "converse",
			Name:      "action_duration_seconds",
			Help:      "Latency of external action invocations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.sessionsStarted,
		m.sessionsCompleted,
		m.validationFailures,
		m.branchErrors,
		m.nodeVisits,
		m.actionDuration,
	)
	return m
}

// SessionStarted counts one initialized session. Called by the session
// service rather than a hook: the engine has no session notion.
func (m *Metrics) SessionStarted() {
	m.sessionsStarted.Inc()
}

// Hooks returns lifecycle hooks feeding the collectors. Merge manually if
// you also need your own hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(_ context.Context, ev *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(string(ev.NodeType)).Inc()
		},
		OnValidationFailure: func(_ context.Context, _ *domain.ValidationEvent) {
			m.validationFailures.Inc()
		},
		OnActionInvoke: func(_ context.Context, ev *domain.ActionEvent) {
			m.actionDuration.Observe(ev.Duration.Seconds())
		},
		OnComplete: func(_ context.Context, _ *domain.CompleteEvent) {
			m.sessionsCompleted.Inc()
		},
		OnBranchError: func(_ context.Context, _ *domain.BranchEvent) {
			m.branchErrors.Inc()
		},
	}
}
