package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ExportsTotal   *prometheus.CounterVec
	SpacesExported prometheus.Counter
	ExportDuration prometheus.Histogram
	LoginsTotal    *prometheus.CounterVec
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates new prometheus metrics on reg
func NewMetricsWithRegisterer(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ExportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "The total number of export runs by status",
		}, []string{"status"}),
		SpacesExported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spaces_exported_total",
			Help:      "The total number of space rows written to the worksheet",
		}),
		ExportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time taken by a full export run",
			Buckets:   prometheus.DefBuckets,
		}),
		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "The total number of completed OAuth callbacks by status",
		}, []string{"status"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
