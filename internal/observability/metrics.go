package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics registers prometheus collectors exactly once per name and
// hands out the shared vector on later lookups, so wiring code never has
// to coordinate registration order.
type Metrics struct {
	registerer prometheus.Registerer
	namespace  string

	counters   sync.Map // name -> *prometheus.CounterVec
	histograms sync.Map // name -> *prometheus.HistogramVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		registerer: prometheus.DefaultRegisterer,
		namespace:  namespace,
	}
}

// NewMetricsWith uses a private registerer; tests use this to avoid
// polluting the default registry.
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	return &Metrics{registerer: reg, namespace: namespace}
}

func (m *Metrics) Counter(name, help string, labelKeys ...string) *prometheus.CounterVec {
	if v, ok := m.counters.Load(name); ok {
		return v.(*prometheus.CounterVec)
	}
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Name: name, Help: help,
	}, labelKeys)
	m.registerer.MustRegister(cv)
	m.counters.Store(name, cv)
	return cv
}

func (m *Metrics) Histogram(name, help string, buckets []float64, labelKeys ...string) *prometheus.HistogramVec {
	if v, ok := m.histograms.Load(name); ok {
		return v.(*prometheus.HistogramVec)
	}
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Name: name, Help: help, Buckets: buckets,
	}, labelKeys)
	m.registerer.MustRegister(hv)
	m.histograms.Store(name, hv)
	return hv
}
