package metrics

type nopCounter struct{}

func (nopCounter) Inc()        {}
func (nopCounter) Add(float64) {}

type nopGauge struct{}

func (nopGauge) Set(float64) {}
func (nopGauge) Inc()        {}
func (nopGauge) Dec()        {}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopRemapMetrics struct{}

func (nopRemapMetrics) AttachedShards() Gauge              { return nopGauge{} }
func (nopRemapMetrics) AttachedAxes() Gauge                { return nopGauge{} }
func (nopRemapMetrics) ShardDispatch(string, bool) Counter { return nopCounter{} }
func (nopRemapMetrics) RoutingFailures(string) Counter     { return nopCounter{} }
func (nopRemapMetrics) BatchDuration(string) Timer         { return nopTimer{} }

// NopRemapMetrics returns a RemapMetrics that records nothing.
func NopRemapMetrics() RemapMetrics { return nopRemapMetrics{} }
