package remap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixAxes puts axes 0, 1 and 5 on shard 0 (locals 0, 1, 2) and axes 2, 3
// and 4 on shard 1 (locals 0, 1, 2).
func sixAxes() *Table {
	return NewTable([]AxisLocation{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {1, 2}, {0, 2}})
}

func TestAxisBufferSetLen(t *testing.T) {
	var b axisBuffer[float64]

	b.setLen(4)
	copy(b.data, []float64{1, 2, 3, 4})
	backing := cap(b.data)

	b.setLen(2)
	assert.Equal(t, []float64{0, 0}, b.data, "shrinking clears the visible prefix")

	b.setLen(4)
	assert.Equal(t, []float64{0, 0, 0, 0}, b.data, "stale values never reappear")
	assert.Equal(t, backing, cap(b.data), "capacity is retained")

	b.setLen(10)
	assert.Len(t, b.data, 10)
}

func TestRoutePreservesCallerOrder(t *testing.T) {
	table := sixAxes()
	d := newDecomposition("selected")
	d.configure(table.countPerShard(2))

	axes := []int{5, 0, 3}
	d.route(table, axes)
	assert.Equal(t, []int{2, 0}, d.locals[0].data)
	assert.Equal(t, []int{1}, d.locals[1].data)

	s := floatScratch(d)
	size(d, s)
	require.Len(t, s.bufs[0].data, 2)
	require.Len(t, s.bufs[1].data, 1)

	// Backends answer in the order they were asked.
	s.bufs[0].data[0], s.bufs[0].data[1] = 52, 50
	s.bufs[1].data[0] = 31

	out := make([]float64, len(axes))
	gather(d, s, table, axes, out)
	assert.Equal(t, []float64{52, 50, 31}, out)
}

func TestFillFollowsRoute(t *testing.T) {
	table := sixAxes()
	d := newDecomposition("selected")
	d.configure(table.countPerShard(2))

	axes := []int{4, 1, 2, 0}
	d.route(table, axes)
	s := floatScratch(d)
	fill(s, table, axes, []float64{40, 10, 20, 0})

	assert.Equal(t, []int{1, 0}, d.locals[0].data)
	assert.Equal(t, []float64{10, 0}, s.bufs[0].data)
	assert.Equal(t, []int{2, 0}, d.locals[1].data)
	assert.Equal(t, []float64{40, 20}, s.bufs[1].data)
}

func TestRouteAfterLargerCallLeavesNoStaleEntries(t *testing.T) {
	table := sixAxes()
	d := newDecomposition("selected")
	d.configure(table.countPerShard(2))

	d.route(table, []int{0, 1, 5, 2, 3, 4})
	s := floatScratch(d)
	size(d, s)
	for i := range s.bufs {
		for k := range s.bufs[i].data {
			s.bufs[i].data[k] = 99
		}
	}

	d.route(table, []int{3})
	size(d, s)
	assert.Empty(t, d.locals[0].data)
	assert.False(t, d.involved(0))
	assert.True(t, d.involved(1))
	assert.Empty(t, s.bufs[0].data)
	assert.Equal(t, []float64{0}, s.bufs[1].data)
}

func TestRouteRepeatedAxis(t *testing.T) {
	table := sixAxes()
	d := newDecomposition("selected")
	d.configure(table.countPerShard(2))

	axes := []int{2, 2, 0}
	d.route(table, axes)
	assert.Equal(t, []int{0}, d.locals[0].data)
	assert.Equal(t, []int{0, 0}, d.locals[1].data)

	s := floatScratch(d)
	size(d, s)
	s.bufs[1].data[0], s.bufs[1].data[1] = 7, 8
	s.bufs[0].data[0] = 1

	out := make([]float64, 3)
	gather(d, s, table, axes, out)
	assert.Equal(t, []float64{7, 8, 1}, out)
}
