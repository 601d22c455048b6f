package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	stageDuration    *prom.HistogramVec
	inventoryDirs    prom.Gauge
	inventoryEntries prom.Gauge
	runOutcome       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "siteconf",
			Name:      "stage_duration_seconds",
			Help:      "Duration of generation run stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		inventoryDirs: prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "inventory_subfolders",
			Help:      "Subfolders in the last built inventory",
		}),
		inventoryEntries: prom.NewGauge(prom.GaugeOpts{
			Namespace: "siteconf",
			Name:      "inventory_entries",
			Help:      "Entries listed across all subfolders in the last built inventory",
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "siteconf",
			Name:      "run_outcomes_total",
			Help:      "Generation runs by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.inventoryDirs, pr.inventoryEntries, pr.runOutcome)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveInventory(dirs, entries int) {
	if p == nil {
		return
	}
	p.inventoryDirs.Set(float64(dirs))
	p.inventoryEntries.Set(float64(entries))
}

func (p *PrometheusRecorder) IncRunOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, atomically, for the node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
