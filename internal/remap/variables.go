package remap

import (
	"errors"
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

// AxisName returns the name of axis j as reported by its backend.
func (r *Remapper) AxisName(j int) (string, error) {
	return query(r, j, capAxisInfo, device.AxisInfo.AxisName)
}

func (r *Remapper) JointType(j int) (device.JointType, error) {
	return query(r, j, capAxisInfo, device.AxisInfo.JointType)
}

// RemoteVariable reads key from every shard. The result holds one entry per
// shard in ShardID order; entries of failed shards are nil.
func (r *Remapper) RemoteVariable(key string) ([][]byte, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	vals := make([][]byte, r.registry.len())
	err := forEachShard(r, capRemoteVariables, func(v device.RemoteVariables, h *shardHandle) error {
		b, err := v.RemoteVariable(key)
		if err != nil {
			return err
		}
		vals[h.id] = b
		return nil
	})
	return vals, err
}

// SetRemoteVariable writes vals[i] to shard i.
func (r *Remapper) SetRemoteVariable(key string, vals [][]byte) error {
	if err := r.ready(); err != nil {
		return err
	}
	if len(vals) != r.registry.len() {
		return fmt.Errorf("%w: %d values for %d shards", ErrLengthMismatch, len(vals), r.registry.len())
	}
	return forEachShard(r, capRemoteVariables, func(v device.RemoteVariables, h *shardHandle) error {
		return v.SetRemoteVariable(key, vals[h.id])
	})
}

// RemoteVariablesList returns the keys known to the first shard that
// exposes remote variables.
func (r *Remapper) RemoteVariablesList() ([]string, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	for _, h := range r.registry.shards {
		if h.vars != nil {
			return h.vars.RemoteVariablesList()
		}
	}
	return nil, fmt.Errorf("%w: %s on every shard", ErrCapabilityUnavailable, capRemoteVariables.name)
}

// IsUnavailable reports whether err includes a missing capability.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrCapabilityUnavailable)
}
