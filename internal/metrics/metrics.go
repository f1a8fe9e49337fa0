// Package metrics exposes purge run metrics through a private Prometheus
// registry that is written to a node_exporter textfile after each run.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatumaykin/purgetemp/internal/errcode"
)

// File actions counted by AddFiles.
const (
	ActionPurge = "purge"
	ActionMove  = "move"
)

type PrometheusMetrics struct {
	registry     *prometheus.Registry
	runsTotal    *prometheus.CounterVec
	runDuration  prometheus.Histogram
	filesTotal   *prometheus.CounterVec
	stageFolders prometheus.Gauge
	lastRunTime  prometheus.Gauge
	lastRunCode  prometheus.Gauge
}

func New(namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of purge runs by result code and category",
			},
			[]string{"code", "category"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of purge runs",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
			},
		),
		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Files purged or moved to the next stage",
			},
			[]string{"action"},
		),
		stageFolders: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stage_folders",
				Help:      "Number of planned stage folders",
			},
		),
		lastRunTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last purge run",
			},
		),
		lastRunCode: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_code",
				Help:      "Result code of the last purge run (0 = success)",
			},
		),
	}

	m.registry.MustRegister(
		m.runsTotal,
		m.runDuration,
		m.filesTotal,
		m.stageFolders,
		m.lastRunTime,
		m.lastRunCode,
	)

	return m
}

func (m *PrometheusMetrics) ObserveRun(code errcode.Code, duration time.Duration) {
	m.runsTotal.WithLabelValues(code.String(), string(code.Category())).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.lastRunTime.SetToCurrentTime()
	m.lastRunCode.Set(float64(code))
}

func (m *PrometheusMetrics) AddFiles(action string, n int) {
	if n > 0 {
		m.filesTotal.WithLabelValues(action).Add(float64(n))
	}
}

func (m *PrometheusMetrics) SetStageFolders(n int) {
	m.stageFolders.Set(float64(n))
}

// Gatherer exposes the private registry.
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile atomically writes all metrics to path in the text exposition format.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
