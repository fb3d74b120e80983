// Package monitoring exposes Prometheus metrics for the menu service:
// ingestion runs by outcome, per-stage durations and menu writes.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Monitor registers and updates the service metrics
type Monitor struct {
	ingestRuns     *prometheus.CounterVec
	stageDurations *prometheus.HistogramVec
	menuWrites     *prometheus.CounterVec

	mu          sync.Mutex
	stageStarts map[string]stageStart
}

type stageStart struct {
	stage string
	at    time.Time
}

// NewMonitor creates a monitor and registers its collectors
func NewMonitor(reg prometheus.Registerer) *Monitor {
	m := &Monitor{
		ingestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "menuforge_ingest_runs_total",
			Help: "Document ingestion runs by outcome.",
		}, []string{"outcome"}),
		stageDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "menuforge_ingest_stage_duration_seconds",
			Help:    "Duration of each ingestion pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"stage"}),
		menuWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "menuforge_menu_writes_total",
			Help: "Replace-style menu writes by outcome.",
		}, []string{"outcome"}),
		stageStarts: make(map[string]stageStart),
	}

	reg.MustRegister(m.ingestRuns, m.stageDurations, m.menuWrites)
	return m
}

// IngestRunFinished records a completed or failed ingestion run
func (m *Monitor) IngestRunFinished(outcome string) {
	m.ingestRuns.WithLabelValues(outcome).Inc()
}

// StageEntered marks the start of a pipeline stage for the given run
// and closes out the previous stage's duration.
func (m *Monitor) StageEntered(runID, stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if prev, ok := m.stageStarts[runID]; ok {
		m.stageDurations.WithLabelValues(prev.stage).Observe(now.Sub(prev.at).Seconds())
	}
	m.stageStarts[runID] = stageStart{stage: stage, at: now}
}

// RunFinished closes the last open stage and drops run bookkeeping
func (m *Monitor) RunFinished(runID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.stageStarts[runID]; ok {
		m.stageDurations.WithLabelValues(prev.stage).Observe(time.Since(prev.at).Seconds())
	}
	delete(m.stageStarts, runID)
}

// MenuWritten records a menu replace attempt
func (m *Monitor) MenuWritten(outcome string) {
	m.menuWrites.WithLabelValues(outcome).Inc()
}
