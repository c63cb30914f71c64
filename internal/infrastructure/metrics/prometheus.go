// Package metrics exports labeling counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecoyoung/packform/internal/domain"
)

const namespace = "packform"

// Recorder holds the labeling metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	Batches       prometheus.Counter
	Rows          prometheus.Counter
	Standardized  prometheus.Counter
	Filled        prometheus.Counter
	Absent        prometheus.Counter
	FilledByLabel *prometheus.CounterVec
	BatchDuration prometheus.Histogram
}

// NewRecorder registers the labeling metrics plus Go and process collectors
// on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		Batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total batches labeled",
		}),
		Rows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Total rows processed",
		}),
		Standardized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_standardized_total",
			Help:      "Rows whose existing label was rewritten to the canonical form",
		}),
		Filled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_filled_total",
			Help:      "Rows whose missing label was inferred from text",
		}),
		Absent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_absent_total",
			Help:      "Rows left without a label after processing",
		}),
		FilledByLabel: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_filled_by_category_total",
			Help:      "Inferred labels by category",
		}, []string{"category"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Time to label a batch",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// RecordBatch implements domain.BatchRecorder
func (r *Recorder) RecordBatch(batch *domain.Batch, duration time.Duration) {
	r.Batches.Inc()
	r.Rows.Add(float64(len(batch.Records)))
	r.Standardized.Add(float64(batch.StandardizedCount))
	r.Filled.Add(float64(batch.FilledCount))
	r.BatchDuration.Observe(duration.Seconds())

	absent := 0
	for _, rec := range batch.Records {
		if rec.Filled() {
			r.FilledByLabel.WithLabelValues(string(rec.MatchedCategory)).Inc()
		}
		if domain.IsBlank(rec.Label) {
			absent++
		}
	}
	r.Absent.Add(float64(absent))
}

// ObserveCacheSize exports the number of cached detections, read from size at scrape time.
func (r *Recorder) ObserveCacheSize(size func() int) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "detection_cache_entries",
		Help:      "Detections currently held in the cache",
	}, func() float64 {
		return float64(size())
	}))
}

// Registry returns the registry the metrics live on
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns the Prometheus HTTP handler for the metrics endpoint
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
