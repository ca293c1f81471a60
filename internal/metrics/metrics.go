// Package metrics exposes Prometheus collectors for ontology references.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "owloop"

// Metrics holds the collectors recorded by an ontology reference. A nil
// *Metrics records nothing.
type Metrics struct {
	queries         *prometheus.CounterVec
	changes         *prometheus.CounterVec
	reasoning       *prometheus.HistogramVec
	inconsistencies *prometheus.CounterVec
	axioms          *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg. A nil reg uses
// prometheus.DefaultRegisterer. Collectors already registered on reg are
// reused, so several references may share one registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Axiom queries served, by ontology and axiom kind.",
		}, []string{"ontology", "kind"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Asserted axiom changes, by ontology and operation.",
		}, []string{"ontology", "op"}),
		reasoning: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reasoning_duration_seconds",
			Help:      "Time spent computing inferences.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"ontology"}),
		inconsistencies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inconsistencies_total",
			Help:      "Reasoning runs that found the ontology inconsistent.",
		}, []string{"ontology"}),
		axioms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "asserted_axioms",
			Help:      "Number of asserted axioms held by a reference.",
		}, []string{"ontology"}),
	}

	var err error
	m.queries, err = register(reg, m.queries)
	if err != nil {
		return nil, err
	}
	m.changes, err = register(reg, m.changes)
	if err != nil {
		return nil, err
	}
	m.reasoning, err = register(reg, m.reasoning)
	if err != nil {
		return nil, err
	}
	m.inconsistencies, err = register(reg, m.inconsistencies)
	if err != nil {
		return nil, err
	}
	m.axioms, err = register(reg, m.axioms)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("registering metrics: %w", err)
	}
	return c, nil
}

// Query counts one query.
func (m *Metrics) Query(ontology, kind string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(ontology, kind).Inc()
}

// Change counts one assert or retract.
func (m *Metrics) Change(ontology, op string) {
	if m == nil {
		return
	}
	m.changes.WithLabelValues(ontology, op).Inc()
}

// Reasoned records one reasoning run.
func (m *Metrics) Reasoned(ontology string, took time.Duration, consistent bool) {
	if m == nil {
		return
	}
	m.reasoning.WithLabelValues(ontology).Observe(took.Seconds())
	if !consistent {
		m.inconsistencies.WithLabelValues(ontology).Inc()
	}
}

// Axioms sets the asserted axiom count.
func (m *Metrics) Axioms(ontology string, n int) {
	if m == nil {
		return
	}
	m.axioms.WithLabelValues(ontology).Set(float64(n))
}
