package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type QueryMetricsCollector struct {
	Queries         *prometheus.CounterVec
	Superseded      *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
}

// The collector is registered exactly once per process; promauto panics on
// duplicate registration, so construction is guarded for concurrent callers.
var (
	globalCollector   *QueryMetricsCollector
	collectorInitOnce sync.Once
)

func getCollector() *QueryMetricsCollector {
	collectorInitOnce.Do(func() {
		globalCollector = &QueryMetricsCollector{
			Queries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_queries_total",
					Help: "The total number of weather queries by outcome",
				},
				[]string{"source", "outcome"},
			),
			Superseded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_queries_superseded_total",
					Help: "The total number of query results dropped because a newer query finished first",
				},
				[]string{"source"},
			),
			ProviderLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_provider_duration_seconds",
					Help:    "Upstream provider call duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider"},
			),
		}
	})
	return globalCollector
}

type QueryMetrics struct {
	source     string
	succeeded  int64
	failed     int64
	superseded int64
	collector  *QueryMetricsCollector
	mu         sync.RWMutex
}

func NewQueryMetrics(source string) *QueryMetrics {
	return &QueryMetrics{
		source:    source,
		collector: getCollector(),
	}
}

func (m *QueryMetrics) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.succeeded++
	m.collector.Queries.WithLabelValues(m.source, "success").Inc()
}

func (m *QueryMetrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failed++
	m.collector.Queries.WithLabelValues(m.source, "failure").Inc()
}

func (m *QueryMetrics) RecordSuperseded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.superseded++
	m.collector.Superseded.WithLabelValues(m.source).Inc()
}

func (m *QueryMetrics) RecordProviderLatency(provider string, duration float64) {
	m.collector.ProviderLatency.WithLabelValues(provider).Observe(duration)
}

func (m *QueryMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"source":     m.source,
		"succeeded":  m.succeeded,
		"failed":     m.failed,
		"superseded": m.superseded,
	}
}
