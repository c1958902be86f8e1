package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	comparisons  *prometheus.CounterVec
	ratiosPerReq prometheus.Histogram
	fetches      *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	warnings     *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered on reg (nil means the default registry).
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		comparisons: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincompare_comparisons_total",
				Help: "Comparisons computed, by period",
			},
			[]string{"period"},
		),
		ratiosPerReq: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fincompare_comparison_ratios",
				Help:    "Number of ratios requested per comparison",
				Buckets: []float64{1, 2, 3, 5, 9},
			},
		),
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincompare_snapshot_fetches_total",
				Help: "Snapshot list fetches by source and result",
			},
			[]string{"source", "result"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincompare_cache_lookups_total",
				Help: "Snapshot cache lookups",
			},
			[]string{"hit"},
		),
		warnings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincompare_data_warnings_total",
				Help: "Data-quality warnings attached to comparisons",
			},
			[]string{"code"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincompare_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincompare_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordComparison(period string, ratios int) {
	r.comparisons.WithLabelValues(period).Inc()
	r.ratiosPerReq.Observe(float64(ratios))
}

func (r *Recorder) RecordFetch(source, result string) {
	r.fetches.WithLabelValues(source, result).Inc()
}

func (r *Recorder) RecordCacheLookup(hit bool) {
	r.cacheLookups.WithLabelValues(strconv.FormatBool(hit)).Inc()
}

func (r *Recorder) RecordWarning(code string) {
	r.warnings.WithLabelValues(code).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement. Used by the CLI and tests.
type Nop struct{}

func (Nop) RecordComparison(string, int)  {}
func (Nop) RecordFetch(string, string)    {}
func (Nop) RecordCacheLookup(bool)        {}
func (Nop) RecordWarning(string)          {}
func (Nop) RecordError(string)            {}
func (Nop) RecordLatency(string, float64) {}
