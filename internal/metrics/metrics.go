// Package metrics holds the Prometheus collectors of the ingestion and bulk pipelines.
// A nil *Pipeline is valid and records nothing.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline groups the pipeline counters.
type Pipeline struct {
	bulkTargets *prometheus.CounterVec
	commitSteps *prometheus.CounterVec
	analyses    *prometheus.CounterVec
}

// NewPipeline creates the counters and registers them on reg.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	p := &Pipeline{
		bulkTargets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bulk_targets_total",
				Help: "Bulk mutation targets by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		commitSteps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commit_steps_total",
				Help: "Commit pipeline steps by step name and outcome.",
			},
			[]string{"step", "outcome"},
		),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_analyses_total",
				Help: "Classified uploads by outcome (analyzed or fallback).",
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{p.bulkTargets, p.commitSteps, p.analyses} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register pipeline metrics: %w", err)
		}
	}
	return p, nil
}

func (p *Pipeline) BulkTarget(kind, outcome string) {
	if p == nil {
		return
	}
	p.bulkTargets.WithLabelValues(kind, outcome).Inc()
}

func (p *Pipeline) CommitStep(step, outcome string) {
	if p == nil {
		return
	}
	p.commitSteps.WithLabelValues(step, outcome).Inc()
}

func (p *Pipeline) Analysis(outcome string) {
	if p == nil {
		return
	}
	p.analyses.WithLabelValues(outcome).Inc()
}
