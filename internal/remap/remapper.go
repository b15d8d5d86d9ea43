package remap

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dreamware/axisremap/internal/device"
	"github.com/dreamware/axisremap/internal/metrics"
)

// Option configures a Remapper.
type Option func(*Remapper)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Remapper) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics sink. The default records nothing.
func WithMetrics(m metrics.RemapMetrics) Option {
	return func(r *Remapper) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithClock overrides the time source used for stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Remapper) {
		if now != nil {
			r.now = now
		}
	}
}

// Remapper presents several backends as one device with a single
// contiguous axis index space.
//
// Attach and Detach must not run concurrently with any other method; the
// owner serialises them. Once attached, every other method is safe for
// concurrent use.
type Remapper struct {
	logger  *zap.Logger
	metrics metrics.RemapMetrics
	now     func() time.Time

	registry *shardRegistry
	table    *Table
	all      *decomposition
	selected *decomposition

	cfg     Config
	allAxes []int
	names   []string

	stamp   device.Stamp
	stampMu sync.Mutex

	mode  Mode
	state State
}

// New validates cfg and returns an unattached Remapper.
func New(cfg Config, opts ...Option) (*Remapper, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	r := &Remapper{
		cfg:      cfg,
		mode:     mode,
		logger:   zap.NewNop(),
		metrics:  metrics.NopRemapMetrics(),
		now:      time.Now,
		all:      newDecomposition("all"),
		selected: newDecomposition("selected"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(zap.String("mode", mode.String()))
	if cfg.Verbose {
		r.logger.Info("running with verbose output")
	}
	return r, nil
}

// Mode reports the configured resolution strategy.
func (r *Remapper) Mode() Mode { return r.mode }

// State reports the attach lifecycle state.
func (r *Remapper) State() State { return r.state }

// Attach probes the backends, resolves the axis table and makes the
// remapper operational. On failure nothing stays attached.
func (r *Remapper) Attach(backends []Backend) error {
	if r.state == StateAttached || r.state == StateAttaching {
		return ErrAlreadyAttached
	}
	if len(backends) == 0 {
		return ErrNoBackends
	}

	prev := r.state
	r.state = StateAttaching
	reg := newShardRegistry(r.logger, r.cfg.Verbose)

	table, err := r.buildRegistry(reg, backends)
	if err == nil {
		err = table.Validate(reg.axisCounts())
	}
	if err != nil {
		reg.releaseAll()
		r.state = prev
		r.logger.Error("attach failed", zap.Error(err))
		return err
	}

	r.registry = reg
	r.table = table
	r.allAxes = make([]int, table.Len())
	for i := range r.allAxes {
		r.allAxes[i] = i
	}
	counts := table.countPerShard(reg.len())
	r.all.configure(counts)
	r.selected.configure(counts)
	r.state = StateAttached

	r.names = r.discoverNames()
	r.metrics.AttachedShards().Set(float64(reg.len()))
	r.metrics.AttachedAxes().Set(float64(table.Len()))
	r.logger.Info("attached",
		zap.Int("shards", reg.len()),
		zap.Int("axes", table.Len()),
		zap.Bool("calibrator", reg.calibrator != nil))
	return nil
}

func (r *Remapper) buildRegistry(reg *shardRegistry, backends []Backend) (*Table, error) {
	switch r.mode {
	case ModeNames:
		for _, b := range backends {
			if isCalibratorKey(b.Key) {
				if err := reg.setCalibrator(b); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := reg.add(b); err != nil {
				return nil, err
			}
		}
		if reg.len() == 0 {
			return nil, ErrNoBackends
		}
		return resolveByName(r.cfg.AxesNames, reg)

	case ModeRanges:
		byKey := make(map[string]Backend, len(backends))
		for _, b := range backends {
			if isCalibratorKey(b.Key) {
				if err := reg.setCalibrator(b); err != nil {
					return nil, err
				}
				continue
			}
			if _, dup := byKey[b.Key]; dup {
				return nil, fmt.Errorf("%w: key %q supplied twice", ErrUnexpectedBackend, b.Key)
			}
			if _, ok := r.cfg.Ranges[b.Key]; !ok {
				return nil, fmt.Errorf("%w: key %q is not a configured network", ErrUnexpectedBackend, b.Key)
			}
			byKey[b.Key] = b
		}
		for _, key := range r.cfg.Networks {
			b, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrMissingBackend, key)
			}
			if _, err := reg.add(b); err != nil {
				return nil, err
			}
		}
		return resolveByRange(r.cfg, reg)
	}
	return nil, configError("unknown mode %v", r.mode)
}

// discoverNames returns the axis names after attach. In range mode they
// are queried from the backends; a failure only costs the name.
func (r *Remapper) discoverNames() []string {
	if r.mode == ModeNames {
		return append([]string(nil), r.cfg.AxesNames...)
	}
	names := make([]string, r.table.Len())
	for axis := range names {
		name, err := r.AxisName(axis)
		if err != nil {
			r.logger.Warn("unable to read axis name", zap.Int("axis", axis), zap.Error(err))
			continue
		}
		names[axis] = name
	}
	return names
}

// Detach releases every shard and the axis table. It never fails and may
// be called any number of times, attached or not.
func (r *Remapper) Detach() error {
	if r.state == StateUnattached || r.state == StateDetached {
		return nil
	}
	if r.registry != nil {
		r.registry.releaseAll()
	}
	r.registry = nil
	r.table = nil
	r.allAxes = nil
	r.names = nil
	r.state = StateDetached
	r.metrics.AttachedShards().Set(0)
	r.metrics.AttachedAxes().Set(0)
	r.logger.Info("detached")
	return nil
}

// Close detaches the remapper.
func (r *Remapper) Close() error { return r.Detach() }

// Axes returns the number of logical axes.
func (r *Remapper) Axes() (int, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	return r.table.Len(), nil
}

// AxesNames returns the logical axis names in index order. In range mode
// an axis whose backend could not report its name has an empty entry.
func (r *Remapper) AxesNames() []string {
	return append([]string(nil), r.names...)
}

// Locations returns a copy of the axis table.
func (r *Remapper) Locations() ([]AxisLocation, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.table.Locations(), nil
}

// Shards describes the attached shards in ShardID order.
func (r *Remapper) Shards() ([]ShardInfo, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.registry.infos(), nil
}

// Ping asks every shard for its axis count and returns one entry per shard
// key. An entry is nil when the shard answered with the count it reported
// at attach time.
func (r *Remapper) Ping() (map[string]error, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	out := make(map[string]error, r.registry.len())
	for _, h := range r.registry.shards {
		n, err := h.device.(device.AxisCounter).Axes()
		switch {
		case err != nil:
			out[h.key] = &ShardError{Shard: h.id, Key: h.key, Err: err}
		case n != h.axes:
			out[h.key] = &ShardError{Shard: h.id, Key: h.key, Err: fmt.Errorf("reports %d axes, attached with %d", n, h.axes)}
		default:
			out[h.key] = nil
		}
	}
	return out, nil
}

// LastInputStamp returns a stamp whose time is the mean of the last input
// stamps of every shard that reports one. When no shard does, the current
// time is used. The sequence number grows on every call.
func (r *Remapper) LastInputStamp() (device.Stamp, error) {
	if err := r.ready(); err != nil {
		return device.Stamp{}, err
	}

	var (
		origin time.Time
		offset time.Duration
		n      int
	)
	for _, h := range r.registry.shards {
		if h.timed == nil {
			continue
		}
		s := h.timed.LastInputStamp()
		if !s.IsValid() {
			continue
		}
		if n == 0 {
			origin = s.Time
		}
		offset += s.Time.Sub(origin)
		n++
	}

	r.stampMu.Lock()
	defer r.stampMu.Unlock()
	r.stamp.Seq++
	if n > 0 {
		r.stamp.Time = origin.Add(offset / time.Duration(n))
	} else {
		r.stamp.Time = r.now()
	}
	return r.stamp, nil
}

func (r *Remapper) ready() error {
	if r.state != StateAttached {
		r.metrics.RoutingFailures("not_attached").Inc()
		return ErrNotAttached
	}
	return nil
}

// locate resolves a logical axis to its shard and local index.
func (r *Remapper) locate(axis int) (*shardHandle, int, error) {
	loc, err := r.table.Locate(axis)
	if err != nil {
		r.metrics.RoutingFailures("axis_range").Inc()
		return nil, 0, err
	}
	h, ok := r.registry.get(loc.Shard)
	if !ok {
		r.metrics.RoutingFailures("shard").Inc()
		return nil, 0, fmt.Errorf("%w: shard %d for axis %d", ErrNotAttached, loc.Shard, axis)
	}
	return h, loc.Local, nil
}

func shardLabel(h *shardHandle) string {
	if h.key != "" {
		return h.key
	}
	return strconv.Itoa(h.id)
}
