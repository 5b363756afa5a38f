package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crop_recommender"

// Recommendation sources and outcomes used as label values.
const (
	SourceHTTP   = "http"
	SourceStream = "stream"

	OutcomeMatched  = "matched"
	OutcomeNoMatch  = "no_match"
	OutcomeBadInput = "bad_input"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// catalog, the recommendation endpoints, and the streaming pipeline.
type Metrics struct {
	// Catalog state after the startup load.
	CatalogCrops        prometheus.Gauge
	CatalogSkippedLines prometheus.Gauge

	Recommendations        *prometheus.CounterVec   // labels: source={http,stream}, outcome={matched,no_match,bad_input}
	RecommendationDuration *prometheus.HistogramVec // labels: source
	RecommendationMatches  prometheus.Histogram

	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// Register adds every metric to reg. Used by tests that scrape a private registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveCatalog records the outcome of a catalog load.
func (m *Metrics) ObserveCatalog(crops, skipped int) {
	m.CatalogCrops.Set(float64(crops))
	m.CatalogSkippedLines.Set(float64(skipped))
}

// ObserveRecommendation counts one answered query and the number of matches.
func (m *Metrics) ObserveRecommendation(source string, matched int) {
	outcome := OutcomeMatched
	if matched == 0 {
		outcome = OutcomeNoMatch
	}
	m.Recommendations.WithLabelValues(source, outcome).Inc()
	m.RecommendationMatches.Observe(float64(matched))
}

func newMetrics() *Metrics {
	return &Metrics{
		CatalogCrops: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_crops",
			Help:      "Crops in the loaded catalog.",
		}),
		CatalogSkippedLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_skipped_lines",
			Help:      "Catalog data lines dropped as malformed during the last load.",
		}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation queries by source and outcome.",
		}, []string{"source", "outcome"}),
		RecommendationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time spent filtering the catalog for one query.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"source"}),
		RecommendationMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_matches",
			Help:      "Crops returned per query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total field-condition messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total recommendation events written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total messages that could not be turned into a recommendation.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the streaming pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.CatalogCrops,
		m.CatalogSkippedLines,
		m.Recommendations,
		m.RecommendationDuration,
		m.RecommendationMatches,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	}
}
