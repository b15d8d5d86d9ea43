package remap

import (
	"sync"

	"github.com/dreamware/axisremap/internal/device"
)

// axisBuffer is a reusable scratch slice with an explicit logical length.
// Shrinking keeps the backing array; growing inside the retained capacity
// zeroes the newly visible elements, so values from an earlier call are
// never observable past the current length.
type axisBuffer[T any] struct {
	data []T
}

func (b *axisBuffer[T]) setLen(n int) {
	if cap(b.data) < n {
		b.data = make([]T, n)
		return
	}
	b.data = b.data[:n]
	clear(b.data)
}

func (b *axisBuffer[T]) reserve(n int) {
	if cap(b.data) < n {
		b.data = make([]T, 0, n)
	}
	b.data = b.data[:0]
}

func (b *axisBuffer[T]) push(v T) { b.data = append(b.data, v) }

func (b *axisBuffer[T]) len() int { return len(b.data) }

// scratch holds one value buffer per shard for a single element type.
type scratch[T any] struct {
	bufs []axisBuffer[T]
}

func (s *scratch[T]) configure(counts []int) {
	if len(s.bufs) != len(counts) {
		s.bufs = make([]axisBuffer[T], len(counts))
	}
	for i, n := range counts {
		s.bufs[i].reserve(n)
	}
}

// decomposition splits a batch addressed in logical axes into one batch per
// shard and reassembles per-shard results in the caller's order.
//
// The per-shard index lists and value buffers are reused across calls. mu
// guards the whole route → fill/size → dispatch → gather sequence.
type decomposition struct {
	mu    sync.Mutex
	shape string

	locals []axisBuffer[int]
	cursor []int
	errs   []error

	floats       scratch[float64]
	modes        scratch[device.ControlMode]
	interactions scratch[device.InteractionMode]
}

func newDecomposition(shape string) *decomposition {
	return &decomposition{shape: shape}
}

// configure sizes the per-shard structures. counts[i] is the number of
// logical axes owned by shard i and is only used to reserve capacity.
func (d *decomposition) configure(counts []int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.locals) != len(counts) {
		d.locals = make([]axisBuffer[int], len(counts))
	}
	for i, n := range counts {
		d.locals[i].reserve(n)
	}
	d.cursor = make([]int, len(counts))
	d.errs = make([]error, len(counts))
	d.floats.configure(counts)
	d.modes.configure(counts)
	d.interactions.configure(counts)
}

// route records, per shard, the local index of every requested axis. The
// relative order of axes within a shard follows their order in axes.
func (d *decomposition) route(t *Table, axes []int) {
	for i := range d.locals {
		d.locals[i].setLen(0)
	}
	for _, axis := range axes {
		loc := t.locs[axis]
		d.locals[loc.Shard].push(loc.Local)
	}
}

// involved reports whether shard has at least one routed axis.
func (d *decomposition) involved(shard int) bool {
	return d.locals[shard].len() > 0
}

// fill copies in (ordered like axes) into the per-shard value buffers.
func fill[T any](s *scratch[T], t *Table, axes []int, in []T) {
	for i := range s.bufs {
		s.bufs[i].setLen(0)
	}
	for i, axis := range axes {
		s.bufs[t.locs[axis].Shard].push(in[i])
	}
}

// size gives each shard's value buffer exactly as many zeroed slots as it
// has routed axes, ready for a backend to write results into.
func size[T any](d *decomposition, s *scratch[T]) {
	for i := range s.bufs {
		s.bufs[i].setLen(d.locals[i].len())
	}
}

// gather writes per-shard results back into out, position i receiving the
// result for axes[i].
func gather[T any](d *decomposition, s *scratch[T], t *Table, axes []int, out []T) {
	clear(d.cursor)
	for i, axis := range axes {
		shard := t.locs[axis].Shard
		out[i] = s.bufs[shard].data[d.cursor[shard]]
		d.cursor[shard]++
	}
}

func floatScratch(d *decomposition) *scratch[float64] { return &d.floats }

func modeScratch(d *decomposition) *scratch[device.ControlMode] { return &d.modes }

func interactionScratch(d *decomposition) *scratch[device.InteractionMode] { return &d.interactions }
