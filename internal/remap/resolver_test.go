package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dreamware/axisremap/internal/simboard"
)

func registryOf(t *testing.T, backends ...Backend) *shardRegistry {
	t.Helper()
	reg := newShardRegistry(zap.NewNop(), false)
	for _, b := range backends {
		_, err := reg.add(b)
		require.NoError(t, err)
	}
	return reg
}

func named(key string, names ...string) Backend {
	return Backend{Key: key, Device: simboard.MustNew(simboard.Config{Key: key, Axes: len(names), Names: names})}
}

func TestResolveByNameFollowsCallerOrder(t *testing.T) {
	reg := registryOf(t, named("s0", "a", "b"), named("s1", "c"))

	table, err := resolveByName([]string{"c", "a", "b"}, reg)
	require.NoError(t, err)
	assert.Equal(t, []AxisLocation{{1, 0}, {0, 0}, {0, 1}}, table.Locations())
	assert.NoError(t, table.Validate(reg.axisCounts()))
}

func TestResolveByNameRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name     string
		backends []Backend
		names    []string
	}{
		{
			name:     "two shards report elbow",
			backends: []Backend{named("s0", "elbow", "wrist"), named("s1", "elbow")},
			names:    []string{"wrist"},
		},
		{
			name:     "reversed discovery order",
			backends: []Backend{named("s1", "elbow"), named("s0", "elbow", "wrist")},
			names:    []string{"wrist"},
		},
		{
			name:     "one shard reports elbow twice",
			backends: []Backend{named("s0", "elbow", "elbow")},
			names:    []string{"elbow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveByName(tt.names, registryOf(t, tt.backends...))
			assert.ErrorIs(t, err, ErrDuplicateAxisName)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestResolveByNameErrors(t *testing.T) {
	reg := registryOf(t, named("s0", "a", "b"))

	_, err := resolveByName([]string{"a", "z"}, reg)
	assert.ErrorIs(t, err, ErrAxisNotFound)

	_, err = resolveByName([]string{"a", "a"}, reg)
	assert.ErrorIs(t, err, ErrDuplicateAxisName)

	noNames := registryOf(t, Backend{Key: "blind", Device: countOnly(2)})
	_, err = resolveByName([]string{"a"}, noNames)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func rangeConfig(joints int, entries ...any) Config {
	cfg := Config{Joints: joints, Ranges: map[string]Quadruple{}}
	for i := 0; i < len(entries); i += 2 {
		key := entries[i].(string)
		cfg.Networks = append(cfg.Networks, key)
		cfg.Ranges[key] = entries[i+1].(Quadruple)
	}
	return cfg
}

func TestResolveByRange(t *testing.T) {
	cfg := rangeConfig(3, "s0", Quadruple{0, 2, 1, 3})
	reg := registryOf(t, Backend{Key: "s0", Device: countOnly(4)})

	table, err := resolveByRange(cfg, reg)
	require.NoError(t, err)
	assert.Equal(t, []AxisLocation{{0, 1}, {0, 2}, {0, 3}}, table.Locations())
}

func TestResolveByRangeTwoShards(t *testing.T) {
	cfg := rangeConfig(7, "arm", Quadruple{0, 3, 0, 3}, "hand", Quadruple{4, 6, 0, 2})
	reg := registryOf(t,
		Backend{Key: "arm", Device: countOnly(4)},
		Backend{Key: "hand", Device: countOnly(3)})

	table, err := resolveByRange(cfg, reg)
	require.NoError(t, err)
	want := []AxisLocation{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}}
	assert.Equal(t, want, table.Locations())
}

func TestResolveByRangeErrors(t *testing.T) {
	shared := simboard.MustNew(simboard.Config{Key: "shared", Axes: 6})

	tests := []struct {
		name     string
		cfg      Config
		backends []Backend
		wantErr  error
	}{
		{
			name:     "local range beyond shard",
			cfg:      rangeConfig(3, "s0", Quadruple{0, 2, 2, 4}),
			backends: []Backend{{Key: "s0", Device: countOnly(4)}},
			wantErr:  ErrConfig,
		},
		{
			name: "logical overlap",
			cfg:  rangeConfig(4, "s0", Quadruple{0, 2, 0, 2}, "s1", Quadruple{2, 3, 0, 1}),
			backends: []Backend{
				{Key: "s0", Device: countOnly(3)},
				{Key: "s1", Device: countOnly(2)},
			},
			wantErr: ErrRangeOverlap,
		},
		{
			name:     "gap",
			cfg:      rangeConfig(4, "s0", Quadruple{0, 2, 0, 2}),
			backends: []Backend{{Key: "s0", Device: countOnly(3)}},
			wantErr:  ErrConfig,
		},
		{
			name: "local overlap on the same backend",
			cfg:  rangeConfig(4, "lo", Quadruple{0, 1, 0, 1}, "hi", Quadruple{2, 3, 1, 2}),
			backends: []Backend{
				{Key: "lo", Device: shared},
				{Key: "hi", Device: shared},
			},
			wantErr: ErrRangeOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveByRange(tt.cfg, registryOf(t, tt.backends...))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveByRangeAllowLocalOverlap(t *testing.T) {
	shared := simboard.MustNew(simboard.Config{Key: "shared", Axes: 6})
	cfg := rangeConfig(4, "lo", Quadruple{0, 1, 0, 1}, "hi", Quadruple{2, 3, 1, 2})
	cfg.AllowLocalOverlap = true

	table, err := resolveByRange(cfg, registryOf(t,
		Backend{Key: "lo", Device: shared},
		Backend{Key: "hi", Device: shared}))
	require.NoError(t, err)
	assert.Equal(t, []AxisLocation{{0, 0}, {0, 1}, {1, 1}, {1, 2}}, table.Locations())
}

func TestResolveByRangeDistinctBackendsMayReuseLocals(t *testing.T) {
	cfg := rangeConfig(4, "s0", Quadruple{0, 1, 0, 1}, "s1", Quadruple{2, 3, 0, 1})
	reg := registryOf(t,
		Backend{Key: "s0", Device: simboard.MustNew(simboard.Config{Key: "s0", Axes: 2})},
		Backend{Key: "s1", Device: simboard.MustNew(simboard.Config{Key: "s1", Axes: 2})})

	_, err := resolveByRange(cfg, reg)
	assert.NoError(t, err)
}

func TestTable(t *testing.T) {
	locs := []AxisLocation{{0, 1}, {1, 0}}
	table := NewTable(locs)
	locs[0] = AxisLocation{9, 9}

	loc, err := table.Locate(0)
	require.NoError(t, err)
	assert.Equal(t, AxisLocation{0, 1}, loc, "table owns a copy")
	assert.Equal(t, "(shard0,1)", loc.String())

	_, err = table.Locate(2)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)
	_, err = table.Locate(-1)
	assert.ErrorIs(t, err, ErrAxisOutOfRange)

	assert.NoError(t, table.Validate([]int{2, 1}))
	assert.ErrorIs(t, table.Validate([]int{1, 1}), ErrConfig)
	assert.ErrorIs(t, table.Validate([]int{2}), ErrConfig)
	assert.Equal(t, []int{1, 1}, table.countPerShard(2))
}
