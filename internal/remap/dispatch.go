package remap

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// selection is the set of logical axes a batched call addresses: either
// every axis in logical order, or a caller supplied list.
type selection struct {
	axes []int
	all  bool
}

var everyAxis = selection{all: true}

func subset(axes []int) selection { return selection{axes: axes} }

// width is the number of axes sel addresses. It is zero for every axis
// while detached; prepare reports the real error.
func (r *Remapper) width(sel selection) int {
	if !sel.all {
		return len(sel.axes)
	}
	if r.state != StateAttached {
		return 0
	}
	return r.table.Len()
}

// prepare validates a batched call, takes the matching decomposition's
// lock and routes the axes. The caller must unlock d.mu. n is the length
// of the caller's value slice, or -1 when the call carries no values.
func (r *Remapper) prepare(sel selection, n int) ([]int, *decomposition, error) {
	if err := r.ready(); err != nil {
		return nil, nil, err
	}
	axes, d := sel.axes, r.selected
	if sel.all {
		axes, d = r.allAxes, r.all
	}
	if n >= 0 && n != len(axes) {
		r.metrics.RoutingFailures("length").Inc()
		return nil, nil, fmt.Errorf("%w: %d values for %d axes", ErrLengthMismatch, n, len(axes))
	}
	if !sel.all {
		for _, axis := range axes {
			if axis < 0 || axis >= r.table.Len() {
				r.metrics.RoutingFailures("axis_range").Inc()
				return nil, nil, &AxisError{Axis: axis, Err: ErrAxisOutOfRange}
			}
		}
	}
	d.mu.Lock()
	d.route(r.table, axes)
	return axes, d, nil
}

// dispatch calls fn once for every shard that has at least one routed
// axis. Every such shard is attempted; the result joins their errors.
func (r *Remapper) dispatch(d *decomposition, op string, fn func(h *shardHandle) error) error {
	timer := r.metrics.BatchDuration(d.shape)
	defer timer.ObserveDuration()

	clear(d.errs)
	run := func(id int) error {
		h, ok := r.registry.get(id)
		if !ok {
			d.errs[id] = &ShardError{Shard: id, Err: ErrNotAttached}
			return d.errs[id]
		}
		err := fn(h)
		r.metrics.ShardDispatch(shardLabel(h), err == nil).Inc()
		if err != nil {
			d.errs[id] = &ShardError{Shard: id, Key: h.key, Err: err}
			return d.errs[id]
		}
		return nil
	}

	if r.cfg.ParallelDispatch {
		var g errgroup.Group
		for id := range d.locals {
			if !d.involved(id) {
				continue
			}
			g.Go(func() error { return run(id) })
		}
		_ = g.Wait()
	} else {
		for id := range d.locals {
			if d.involved(id) {
				_ = run(id)
			}
		}
	}

	err := errors.Join(d.errs...)
	if err != nil {
		r.logger.Debug("batched operation failed",
			zap.String("op", op), zap.String("shape", d.shape), zap.Error(err))
	}
	return err
}

// viewOf returns the shard's view for c, or ErrCapabilityUnavailable.
func viewOf[V any](r *Remapper, h *shardHandle, c capability[V]) (V, error) {
	v := c.view(h)
	if any(v) == nil {
		r.metrics.RoutingFailures("capability").Inc()
		return v, fmt.Errorf("%w: %s on shard %d (%s)", ErrCapabilityUnavailable, c.name, h.id, h.key)
	}
	return v, nil
}

// resolve maps a logical axis to the owning shard's view and local index.
func resolve[V any](r *Remapper, axis int, c capability[V]) (V, int, error) {
	var zero V
	if err := r.ready(); err != nil {
		return zero, 0, err
	}
	h, local, err := r.locate(axis)
	if err != nil {
		return zero, 0, err
	}
	v, err := viewOf(r, h, c)
	if err != nil {
		return zero, 0, &AxisError{Axis: axis, Err: err}
	}
	return v, local, nil
}

// on runs a single-axis operation against the owning shard.
func on[V any](r *Remapper, axis int, c capability[V], call func(v V, local int) error) error {
	v, local, err := resolve(r, axis, c)
	if err != nil {
		return err
	}
	if err := call(v, local); err != nil {
		return &AxisError{Axis: axis, Err: err}
	}
	return nil
}

// set is the single-value form of on.
func set[V, T any](r *Remapper, axis int, c capability[V], call func(V, int, T) error, val T) error {
	return on(r, axis, c, func(v V, local int) error { return call(v, local, val) })
}

// query reads one value for a single axis.
func query[V, T any](r *Remapper, axis int, c capability[V], call func(V, int) (T, error)) (T, error) {
	var out T
	err := on(r, axis, c, func(v V, local int) error {
		var err error
		out, err = call(v, local)
		return err
	})
	return out, err
}

// setMany sends values through the backends' batched setters.
func setMany[V, T any](r *Remapper, sel selection, c capability[V], pick func(*decomposition) *scratch[T],
	call func(V, []int, []T) error, in []T) error {
	axes, d, err := r.prepare(sel, len(in))
	if err != nil {
		return err
	}
	defer d.mu.Unlock()

	s := pick(d)
	fill(s, r.table, axes, in)
	return r.dispatch(d, c.name, func(h *shardHandle) error {
		v, err := viewOf(r, h, c)
		if err != nil {
			return err
		}
		return call(v, d.locals[h.id].data, s.bufs[h.id].data)
	})
}

// getMany reads values through the backends' batched getters. Slots of a
// failed shard are left zero; the others are populated.
func getMany[V, T any](r *Remapper, sel selection, c capability[V], pick func(*decomposition) *scratch[T],
	call func(V, []int, []T) error, out []T) error {
	axes, d, err := r.prepare(sel, len(out))
	if err != nil {
		return err
	}
	defer d.mu.Unlock()

	s := pick(d)
	size(d, s)
	err = r.dispatch(d, c.name, func(h *shardHandle) error {
		v, err := viewOf(r, h, c)
		if err != nil {
			return err
		}
		return call(v, d.locals[h.id].data, s.bufs[h.id].data)
	})
	gather(d, s, r.table, axes, out)
	return err
}

// commandMany sends a value-less batched command.
func commandMany[V any](r *Remapper, sel selection, c capability[V], call func(V, []int) error) error {
	_, d, err := r.prepare(sel, -1)
	if err != nil {
		return err
	}
	defer d.mu.Unlock()

	return r.dispatch(d, c.name, func(h *shardHandle) error {
		v, err := viewOf(r, h, c)
		if err != nil {
			return err
		}
		return call(v, d.locals[h.id].data)
	})
}

// eachAxis serves a batched call for a group whose backends only offer
// single-axis operations. Axes are grouped by shard and dispatched like
// any batched call; fn receives the caller's position and the local index.
func eachAxis[V any](r *Remapper, sel selection, n int, c capability[V], fn func(v V, i, local int) error) error {
	axes, d, err := r.prepare(sel, n)
	if err != nil {
		return err
	}
	defer d.mu.Unlock()

	return r.dispatch(d, c.name, func(h *shardHandle) error {
		v, err := viewOf(r, h, c)
		if err != nil {
			return err
		}
		var errs []error
		for i, axis := range axes {
			loc := r.table.locs[axis]
			if loc.Shard != h.id {
				continue
			}
			if err := fn(v, i, loc.Local); err != nil {
				errs = append(errs, &AxisError{Axis: axis, Err: err})
			}
		}
		return errors.Join(errs...)
	})
}

// queryEach reads one value per selected axis into out.
func queryEach[V, T any](r *Remapper, sel selection, c capability[V], call func(V, int) (T, error), out []T) error {
	clear(out)
	return eachAxis(r, sel, len(out), c, func(v V, i, local int) error {
		x, err := call(v, local)
		if err != nil {
			return err
		}
		out[i] = x
		return nil
	})
}

// commandEach applies in[i] to the i-th selected axis.
func commandEach[V, T any](r *Remapper, sel selection, c capability[V], call func(V, int, T) error, in []T) error {
	return eachAxis(r, sel, len(in), c, func(v V, i, local int) error {
		return call(v, local, in[i])
	})
}

// forEachShard applies call to every attached shard in ShardID order,
// attempting all of them.
func forEachShard[V any](r *Remapper, c capability[V], call func(v V, h *shardHandle) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	var errs []error
	for _, h := range r.registry.shards {
		v, err := viewOf(r, h, c)
		if err == nil {
			err = call(v, h)
		}
		r.metrics.ShardDispatch(shardLabel(h), err == nil).Inc()
		if err != nil {
			errs = append(errs, &ShardError{Shard: h.id, Key: h.key, Err: err})
		}
	}
	return errors.Join(errs...)
}
