// Package prom exports service operation metrics to Prometheus.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"devicecore/internal/core"
)

const namespace = "devicecore"

// MetricsRecorder implements core.MetricsRecorder with a counter and a
// latency histogram labelled by operation, entity and outcome.
type MetricsRecorder struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewMetricsRecorder registers the collectors with reg. A nil reg uses the
// default registerer.
func NewMetricsRecorder(reg prometheus.Registerer) (*MetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &MetricsRecorder{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Service mutations by operation, entity and outcome.",
		}, []string{"operation", "entity", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Service mutation latency.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation", "entity"}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.durations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe implements core.MetricsRecorder.
func (m *MetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	entity, _, ok := core.DescribeOperation(operation)
	label := string(entity)
	if !ok {
		label = "unknown"
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.operations.WithLabelValues(operation, label, outcome).Inc()
	m.durations.WithLabelValues(operation, label).Observe(duration.Seconds())
}

// StoreCollector reports live record counts per entity kind on every scrape.
type StoreCollector struct {
	svc     *core.Service
	records *prometheus.Desc
}

// NewStoreCollector builds a collector reading from svc.
func NewStoreCollector(svc *core.Service) *StoreCollector {
	return &StoreCollector{
		svc: svc,
		records: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "records"),
			"Records currently held, by entity kind.",
			[]string{"entity"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) { ch <- c.records }

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	snap, err := c.svc.Snapshot(context.Background())
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.records, err)
		return
	}
	counts := map[core.EntityType]int{
		core.EntityFacility:     len(snap.Facilities),
		core.EntityDevice:       len(snap.Devices),
		core.EntityInstallation: len(snap.Installations),
		core.EntityServiceVisit: len(snap.ServiceVisits),
		core.EntityContract:     len(snap.Contracts),
		core.EntityAlert:        len(snap.Alerts),
	}
	for entity, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(n), string(entity))
	}
}
