// Package metrics provides abstract metrics interfaces so the routing layer
// can be instrumented without depending on a particular backend.
package metrics

// Counter is a monotonically increasing metric.
type Counter interface {
	Inc()
	Add(delta float64)
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes.
type Timer interface {
	ObserveDuration()
}

// RemapMetrics instruments a remapper.
type RemapMetrics interface {
	// AttachedShards is the number of shards currently attached.
	AttachedShards() Gauge
	// AttachedAxes is the number of logical axes currently routed.
	AttachedAxes() Gauge
	// ShardDispatch counts batched calls issued to one shard.
	ShardDispatch(shard string, ok bool) Counter
	// RoutingFailures counts operations refused before reaching a backend.
	RoutingFailures(reason string) Counter
	// BatchDuration times one batched operation ("all" or "selected").
	BatchDuration(shape string) Timer
}
