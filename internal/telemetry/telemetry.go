package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry exposes pipeline metrics on the default Prometheus registry.
// A disabled instance is a no-op, so callers never nil-check.
type Telemetry struct {
	enabled           bool
	stageTotal        *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	activeGenerations prometheus.Gauge
}

// New registers the metric set. Call once per process.
func New(enabled bool) *Telemetry {
	if !enabled {
		return &Telemetry{}
	}
	return &Telemetry{
		enabled: true,
		stageTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blogagent_stage_total",
			Help: "Pipeline stage outcomes by stage and status.",
		}, []string{"stage", "status"}),
		generationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogagent_generation_duration_seconds",
			Help:    "Wall time of full blog generations.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		activeGenerations: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "blogagent_active_generations",
			Help: "Generations currently in flight.",
		}),
	}
}

func (t *Telemetry) StageCompleted(stage string) {
	if t.enabled {
		t.stageTotal.WithLabelValues(stage, "completed").Inc()
	}
}

func (t *Telemetry) StageFailed(stage string) {
	if t.enabled {
		t.stageTotal.WithLabelValues(stage, "failed").Inc()
	}
}

func (t *Telemetry) GenerationStarted() {
	if t.enabled {
		t.activeGenerations.Inc()
	}
}

func (t *Telemetry) GenerationFinished(elapsed time.Duration) {
	if t.enabled {
		t.activeGenerations.Dec()
		t.generationSeconds.Observe(elapsed.Seconds())
	}
}
