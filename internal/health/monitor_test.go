package health

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// scripted is a CheckFunc whose result the test swaps between rounds.
type scripted struct {
	mu      sync.Mutex
	results map[string]error
	err     error
	calls   int
}

func (s *scripted) set(results map[string]error, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results, s.err = results, err
}

func (s *scripted) check(context.Context) (map[string]error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.results, s.err
}

func (s *scripted) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestNewMonitorDefaults(t *testing.T) {
	m := NewMonitor(nil, time.Second)
	assert.Equal(t, 3, m.maxFailures)
	assert.Equal(t, time.Second, m.interval)
	assert.Empty(t, m.All())

	m = NewMonitor(nil, time.Second, WithMaxFailures(0), WithLogger(nil))
	assert.Equal(t, 3, m.maxFailures, "non-positive thresholds are ignored")
	assert.NotNil(t, m.logger)
}

func TestStatusTransitions(t *testing.T) {
	boom := errors.New("boom")
	probe := &scripted{}
	m := NewMonitor(probe.check, time.Hour, WithMaxFailures(2))
	ctx := context.Background()

	tests := []struct {
		name      string
		result    error
		want      Status
		wantFails int
	}{
		{"first success", nil, StatusHealthy, 0},
		{"one failure stays healthy", boom, StatusHealthy, 1},
		{"threshold reached", boom, StatusUnhealthy, 2},
		{"further failures", boom, StatusUnhealthy, 3},
		{"recovery", nil, StatusHealthy, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe.set(map[string]error{"arm": tt.result}, nil)
			m.CheckNow(ctx)

			h, ok := m.Shard("arm")
			require.True(t, ok)
			assert.Equal(t, tt.want, h.Status)
			assert.Equal(t, tt.wantFails, h.ConsecutiveFails)
			if tt.result != nil {
				assert.Equal(t, "boom", h.LastError)
			} else {
				assert.Empty(t, h.LastError)
			}
		})
	}
}

func TestUnknownUntilThreshold(t *testing.T) {
	probe := &scripted{}
	probe.set(map[string]error{"hand": errors.New("bus off")}, nil)
	m := NewMonitor(probe.check, time.Hour)

	m.CheckNow(context.Background())
	h, ok := m.Shard("hand")
	require.True(t, ok)
	assert.Equal(t, StatusUnknown, h.Status)
	assert.False(t, m.IsHealthy("hand"))
	assert.False(t, m.IsHealthy("missing"))
}

func TestOnUnhealthyFiresOnce(t *testing.T) {
	probe := &scripted{}
	probe.set(map[string]error{"arm": nil, "hand": errors.New("bus off")}, nil)

	fired := make(chan string, 4)
	m := NewMonitor(probe.check, time.Hour, WithMaxFailures(1),
		WithOnUnhealthy(func(key string) { fired <- key }))

	m.CheckNow(context.Background())
	m.CheckNow(context.Background())

	select {
	case key := <-fired:
		assert.Equal(t, "hand", key)
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}
	select {
	case key := <-fired:
		t.Fatalf("callback fired again for %s", key)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRecordsFollowProbeResults(t *testing.T) {
	probe := &scripted{}
	probe.set(map[string]error{"arm": nil, "hand": nil}, nil)
	m := NewMonitor(probe.check, time.Hour)
	ctx := context.Background()

	m.CheckNow(ctx)
	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "arm", all[0].Key)
	assert.Equal(t, "hand", all[1].Key)

	probe.set(map[string]error{"hand": nil}, nil)
	m.CheckNow(ctx)
	_, ok := m.Shard("arm")
	assert.False(t, ok, "shards missing from the probe are forgotten")

	probe.set(nil, errors.New("remapper not attached"))
	m.CheckNow(ctx)
	assert.Empty(t, m.All())
}

func TestTimestamps(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := t0
	probe := &scripted{}
	m := NewMonitor(probe.check, time.Hour)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	probe.set(map[string]error{"arm": nil}, nil)
	m.CheckNow(ctx)

	now = t0.Add(time.Minute)
	probe.set(map[string]error{"arm": errors.New("x")}, nil)
	m.CheckNow(ctx)

	h, _ := m.Shard("arm")
	assert.Equal(t, t0.Add(time.Minute), h.LastCheck)
	assert.Equal(t, t0, h.LastHealthy)
}

func TestRunChecksUntilCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	probe := &scripted{}
	probe.set(map[string]error{"arm": nil}, nil)
	core, logs := observer.New(zap.InfoLevel)
	m := NewMonitor(probe.check, 10*time.Millisecond, WithLogger(zap.New(core)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return probe.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, m.IsHealthy("arm"))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 1, logs.FilterMessage("health monitor stopped").Len())
}

func TestFailuresAreLogged(t *testing.T) {
	probe := &scripted{}
	probe.set(map[string]error{"hand": errors.New("bus off")}, nil)
	core, logs := observer.New(zap.WarnLevel)
	m := NewMonitor(probe.check, time.Hour, WithLogger(zap.New(core)), WithMaxFailures(1))

	m.CheckNow(context.Background())

	assert.Equal(t, 1, logs.FilterMessage("shard probe failed").Len())
	entries := logs.FilterMessage("shard marked unhealthy").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "hand", entries[0].ContextMap()["shard"])
}
