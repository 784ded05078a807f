// Package metrics exposes run results as Prometheus gauges for the node
// exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/sports-events/internal/aggregator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sports_events"

// Collector holds the gauges of one run on a private registry.
type Collector struct {
	registry *prometheus.Registry

	SourceEvents     *prometheus.GaugeVec
	SourceCandidates *prometheus.GaugeVec
	SourceDropped    *prometheus.GaugeVec
	SourceUp         *prometheus.GaugeVec
	SourceDuration   *prometheus.GaugeVec
	CatalogueEvents  *prometheus.GaugeVec
	LastRun          prometheus.Gauge
}

// New registers the run gauges on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		SourceEvents: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_events",
			Help:      "Validated events contributed by a source in the last run.",
		}, []string{"source"}),
		SourceCandidates: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_candidates",
			Help:      "Candidates extracted from a source before validation.",
		}, []string{"source"}),
		SourceDropped: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_dropped",
			Help:      "Candidates from a source that failed validation.",
		}, []string{"source"}),
		SourceUp: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_up",
			Help:      "1 when the source was fetched and extracted without error, 0 otherwise.",
		}, []string{"source"}),
		SourceDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Wall time spent on a source.",
		}, []string{"source"}),
		CatalogueEvents: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalogue_events",
			Help:      "Events in the written catalogue by category and sport tag.",
		}, []string{"category", "sport_tag"}),
		LastRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run completed.",
		}),
	}
}

// Registry returns the registry the gauges live on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Record sets every gauge from a run result.
func (c *Collector) Record(result *aggregator.Result, finished time.Time) {
	for _, s := range result.Sources {
		c.SourceEvents.WithLabelValues(s.Name).Set(float64(s.Events))
		c.SourceCandidates.WithLabelValues(s.Name).Set(float64(s.Candidates))
		c.SourceDropped.WithLabelValues(s.Name).Set(float64(s.Dropped))
		c.SourceDuration.WithLabelValues(s.Name).Set(s.Duration.Seconds())
		up := 1.0
		if s.Failed() {
			up = 0
		}
		c.SourceUp.WithLabelValues(s.Name).Set(up)
	}

	c.CatalogueEvents.Reset()
	for _, evt := range result.Events {
		c.CatalogueEvents.WithLabelValues(string(evt.Category), string(evt.SportTag)).Inc()
	}
	c.LastRun.Set(float64(finished.Unix()))
}

// WriteFile writes the registry in text exposition format. The file is
// replaced atomically.
func (c *Collector) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
