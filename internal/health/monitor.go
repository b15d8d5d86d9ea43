package health

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Status is the health verdict for one shard.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// ShardHealth tracks the health of a single shard.
// Thread-safe: protected by the Monitor's mutex when accessed.
type ShardHealth struct {
	LastCheck        time.Time `json:"lastCheck"`
	LastHealthy      time.Time `json:"lastHealthy"`
	Key              string    `json:"key"`
	Status           Status    `json:"status"`
	LastError        string    `json:"lastError,omitempty"`
	ConsecutiveFails int       `json:"consecutiveFails"`
}

// CheckFunc probes every shard once. It returns one entry per shard key,
// nil for a shard that answered. A non-nil error means no shard could be
// probed at all, for example because the device is detached.
type CheckFunc func(ctx context.Context) (map[string]error, error)

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMaxFailures sets how many consecutive failed probes mark a shard
// unhealthy. Values below one are ignored.
func WithMaxFailures(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.maxFailures = n
		}
	}
}

// WithOnUnhealthy registers a callback invoked, in its own goroutine, when
// a shard turns unhealthy.
func WithOnUnhealthy(fn func(key string)) Option {
	return func(m *Monitor) { m.onUnhealthy = fn }
}

// Monitor periodically probes the shards of a composite device and keeps
// a per-shard health record.
//
// Thread-safe: all methods are safe for concurrent access.
type Monitor struct {
	shards      map[string]*ShardHealth
	check       CheckFunc
	onUnhealthy func(key string)
	logger      *zap.Logger
	now         func() time.Time
	interval    time.Duration
	mu          sync.RWMutex
	maxFailures int
}

// NewMonitor returns a monitor that calls check every interval once Run
// is started. Shards are marked unhealthy after 3 consecutive failures
// unless WithMaxFailures says otherwise.
//
// Example:
//
//	m := health.NewMonitor(srv.Ping, 5*time.Second, health.WithLogger(logger))
//	go m.Run(ctx)
func NewMonitor(check CheckFunc, interval time.Duration, opts ...Option) *Monitor {
	m := &Monitor{
		shards:      make(map[string]*ShardHealth),
		check:       check,
		logger:      zap.NewNop(),
		now:         time.Now,
		interval:    interval,
		maxFailures: 3,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run checks immediately and then on every tick until ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("health monitor started", zap.Duration("interval", m.interval))
	m.CheckNow(ctx)

	for {
		select {
		case <-ticker.C:
			m.CheckNow(ctx)
		case <-ctx.Done():
			m.logger.Info("health monitor stopped")
			return
		}
	}
}

// CheckNow runs one probe round and updates every record.
//
// Shards missing from the probe result stop being tracked. When the probe
// itself fails every record is dropped.
func (m *Monitor) CheckNow(ctx context.Context) {
	results, err := m.check(ctx)
	if err != nil {
		m.mu.Lock()
		if len(m.shards) > 0 {
			m.logger.Warn("shard probe failed, clearing health records", zap.Error(err))
		}
		m.shards = make(map[string]*ShardHealth)
		m.mu.Unlock()
		return
	}

	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.shards {
		if _, ok := results[key]; !ok {
			delete(m.shards, key)
			m.logger.Info("shard no longer monitored", zap.String("shard", key))
		}
	}
	for key, probeErr := range results {
		m.record(key, probeErr, now)
	}
}

// record must be called with m.mu held.
func (m *Monitor) record(key string, err error, now time.Time) {
	h, ok := m.shards[key]
	if !ok {
		h = &ShardHealth{Key: key, Status: StatusUnknown, LastHealthy: now}
		m.shards[key] = h
	}
	h.LastCheck = now

	if err == nil {
		if h.Status == StatusUnhealthy {
			m.logger.Info("shard recovered", zap.String("shard", key))
		}
		h.Status = StatusHealthy
		h.ConsecutiveFails = 0
		h.LastError = ""
		h.LastHealthy = now
		return
	}

	h.ConsecutiveFails++
	h.LastError = err.Error()
	m.logger.Warn("shard probe failed",
		zap.String("shard", key),
		zap.Int("attempt", h.ConsecutiveFails),
		zap.Int("max", m.maxFailures),
		zap.Error(err))

	if h.ConsecutiveFails >= m.maxFailures && h.Status != StatusUnhealthy {
		h.Status = StatusUnhealthy
		m.logger.Error("shard marked unhealthy",
			zap.String("shard", key),
			zap.Int("failures", h.ConsecutiveFails))
		if m.onUnhealthy != nil {
			go m.onUnhealthy(key)
		}
	}
}

// Shard returns a copy of the record for key.
func (m *Monitor) Shard(key string) (ShardHealth, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.shards[key]
	if !ok {
		return ShardHealth{}, false
	}
	return *h, true
}

// All returns copies of every record, ordered by shard key.
func (m *Monitor) All() []ShardHealth {
	m.mu.RLock()
	out := make([]ShardHealth, 0, len(m.shards))
	for _, h := range m.shards {
		out = append(out, *h)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b ShardHealth) int { return strings.Compare(a.Key, b.Key) })
	return out
}

// IsHealthy reports whether key's last verdict was healthy. Unmonitored
// shards are not healthy.
func (m *Monitor) IsHealthy(key string) bool {
	h, ok := m.Shard(key)
	return ok && h.Status == StatusHealthy
}
