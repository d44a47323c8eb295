package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module provides the Prometheus metrics set.
var Module = fx.Provide(NewMetrics)

// Metrics exposes Prometheus observability primitives for the appeal engine.
type Metrics struct {
	casesCreated    prometheus.Counter
	casesResolved   prometheus.Counter
	votesAccepted   *prometheus.CounterVec
	votesRejected   *prometheus.CounterVec
	integrityFaults prometheus.Counter
}

// NewMetrics registers and returns Prometheus metrics for telemetry.
func NewMetrics() *Metrics {
	casesCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "appealflow_cases_created_total",
		Help: "Counts cases accepted at submission.",
	})

	casesResolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "appealflow_cases_resolved_total",
		Help: "Counts cases resolved through committee voting.",
	})

	votesAccepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appealflow_votes_accepted_total",
		Help: "Counts recorded committee votes by decision.",
	}, []string{"decision"})

	votesRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "appealflow_votes_rejected_total",
		Help: "Counts declined vote submissions by reason.",
	}, []string{"reason"})

	integrityFaults := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "appealflow_integrity_faults_total",
		Help: "Counts negative-balance integrity faults detected during aggregation.",
	})

	prometheus.MustRegister(
		casesCreated,
		casesResolved,
		votesAccepted,
		votesRejected,
		integrityFaults,
	)

	return &Metrics{
		casesCreated:    casesCreated,
		casesResolved:   casesResolved,
		votesAccepted:   votesAccepted,
		votesRejected:   votesRejected,
		integrityFaults: integrityFaults,
	}
}

// NewNopMetrics returns unregistered metrics for tests.
func NewNopMetrics() *Metrics {
	return &Metrics{
		casesCreated:  prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cases_created_total"}),
		casesResolved: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cases_resolved_total"}),
		votesAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_votes_accepted_total",
		}, []string{"decision"}),
		votesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_votes_rejected_total",
		}, []string{"reason"}),
		integrityFaults: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_integrity_faults_total"}),
	}
}

// CaseCreated records an accepted case submission.
func (m *Metrics) CaseCreated() { m.casesCreated.Inc() }

// CaseResolved records a case transitioning to RESOLVED.
func (m *Metrics) CaseResolved() { m.casesResolved.Inc() }

// VoteAccepted records a persisted vote and its decision.
func (m *Metrics) VoteAccepted(decision string) {
	m.votesAccepted.WithLabelValues(decision).Inc()
}

// VoteRejected records a declined vote submission.
func (m *Metrics) VoteRejected(reason string) {
	m.votesRejected.WithLabelValues(reason).Inc()
}

// IntegrityFault records a negative-balance aggregation fault.
func (m *Metrics) IntegrityFault() { m.integrityFaults.Inc() }
