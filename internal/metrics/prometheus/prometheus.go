// Package prometheus provides a Prometheus implementation of
// metrics.RemapMetrics.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dreamware/axisremap/internal/metrics"
)

type timer struct {
	h     prometheus.Observer
	start time.Time
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Batched calls are in-process fan-outs, so buckets start well below a
// millisecond.
var defaultBuckets = []float64{
	.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05, .1,
}

type remapMetrics struct {
	shards   prometheus.Gauge
	axes     prometheus.Gauge
	dispatch *prometheus.CounterVec
	routing  *prometheus.CounterVec
	batch    *prometheus.HistogramVec
}

// NewRemapMetrics creates and registers the remapper collectors on reg.
func NewRemapMetrics(reg prometheus.Registerer) metrics.RemapMetrics {
	m := &remapMetrics{
		shards: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "axisremap",
			Name:      "attached_shards",
			Help:      "Number of backend shards currently attached.",
		}),
		axes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "axisremap",
			Name:      "attached_axes",
			Help:      "Number of logical axes currently routed.",
		}),
		dispatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axisremap",
			Name:      "shard_dispatch_total",
			Help:      "Batched calls issued to each shard, by result.",
		}, []string{"shard", "ok"}),
		routing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axisremap",
			Name:      "routing_failures_total",
			Help:      "Operations refused by the routing layer, by reason.",
		}, []string{"reason"}),
		batch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "axisremap",
			Name:      "batch_duration_seconds",
			Help:      "Duration of batched operations, by shape.",
			Buckets:   defaultBuckets,
		}, []string{"shape"}),
	}
	reg.MustRegister(m.shards, m.axes, m.dispatch, m.routing, m.batch)
	return m
}

func (m *remapMetrics) AttachedShards() metrics.Gauge { return m.shards }
func (m *remapMetrics) AttachedAxes() metrics.Gauge   { return m.axes }

func (m *remapMetrics) ShardDispatch(shard string, ok bool) metrics.Counter {
	return m.dispatch.WithLabelValues(shard, strconv.FormatBool(ok))
}

func (m *remapMetrics) RoutingFailures(reason string) metrics.Counter {
	return m.routing.WithLabelValues(reason)
}

func (m *remapMetrics) BatchDuration(shape string) metrics.Timer {
	return &timer{h: m.batch.WithLabelValues(shape), start: time.Now()}
}
