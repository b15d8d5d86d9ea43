package remap

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// discovered is where a backend reported a given axis name.
type discovered struct {
	key string
	loc AxisLocation
}

// resolveByName builds the table from the caller's ordered axis names.
//
// Every shard is asked for the name of each of its axes. A name reported
// twice fails resolution whichever shard reported it first. The table
// follows the order of names, not discovery order.
func resolveByName(names []string, reg *shardRegistry) (*Table, error) {
	found := make(map[string]discovered)
	for _, h := range reg.shards {
		if h.info == nil {
			return nil, fmt.Errorf("%w: backend %q does not expose axis names", ErrCapabilityUnavailable, h.key)
		}
		for local := 0; local < h.axes; local++ {
			name, err := h.info.AxisName(local)
			if err != nil {
				return nil, fmt.Errorf("backend %q: name of axis %d: %w", h.key, local, err)
			}
			if prev, dup := found[name]; dup {
				return nil, fmt.Errorf("%w: %w %q reported by %q axis %d and %q axis %d",
					ErrConfig, ErrDuplicateAxisName, name, prev.key, prev.loc.Local, h.key, local)
			}
			found[name] = discovered{key: h.key, loc: AxisLocation{Shard: h.id, Local: local}}
		}
	}

	locs := make([]AxisLocation, len(names))
	for axis, name := range names {
		if slices.Index(names[:axis], name) >= 0 {
			return nil, fmt.Errorf("%w: %w %q requested twice", ErrConfig, ErrDuplicateAxisName, name)
		}
		d, ok := found[name]
		if !ok {
			return nil, fmt.Errorf("%w: %w: %q is not reported by any backend", ErrConfig, ErrAxisNotFound, name)
		}
		locs[axis] = d.loc
	}
	return NewTable(locs), nil
}

// resolveByRange builds the table from explicit range quadruples. Shards
// are expected in cfg.Networks order.
//
// Logical axes must be covered exactly once. Local ranges must fit inside
// their shard; two keys bound to the same backend may not claim the same
// local axes unless cfg.AllowLocalOverlap is set.
func resolveByRange(cfg Config, reg *shardRegistry) (*Table, error) {
	if reg.len() != len(cfg.Networks) {
		return nil, fmt.Errorf("%w: %d networks configured, %d attached", ErrMissingBackend, len(cfg.Networks), reg.len())
	}

	locs := make([]AxisLocation, cfg.Joints)
	owner := make([]int, cfg.Joints)
	for i := range owner {
		owner[i] = -1
	}

	for id, key := range cfg.Networks {
		h := reg.shards[id]
		q := cfg.Ranges[key]
		if q.LocalTop >= h.axes {
			return nil, configError("network %q: local range [%d,%d] exceeds the %d axes of the backend",
				key, q.LocalBase, q.LocalTop, h.axes)
		}
		for logical := q.LogicalBase; logical <= q.LogicalTop; logical++ {
			if prev := owner[logical]; prev >= 0 {
				return nil, fmt.Errorf("%w: %w: logical axis %d claimed by %q and %q",
					ErrConfig, ErrRangeOverlap, logical, cfg.Networks[prev], key)
			}
			owner[logical] = id
			locs[logical] = AxisLocation{Shard: id, Local: q.LocalBase + (logical - q.LogicalBase)}
		}
	}

	for logical, id := range owner {
		if id < 0 {
			return nil, configError("logical axis %d is not covered by any network", logical)
		}
	}

	if !cfg.AllowLocalOverlap {
		if err := checkLocalOverlap(cfg, reg); err != nil {
			return nil, err
		}
	}
	return NewTable(locs), nil
}

func checkLocalOverlap(cfg Config, reg *shardRegistry) error {
	for i := 0; i < len(cfg.Networks); i++ {
		for k := i + 1; k < len(cfg.Networks); k++ {
			if !sameDevice(reg.shards[i].device, reg.shards[k].device) {
				continue
			}
			a, b := cfg.Ranges[cfg.Networks[i]], cfg.Ranges[cfg.Networks[k]]
			if a.LocalBase <= b.LocalTop && b.LocalBase <= a.LocalTop {
				return fmt.Errorf("%w: %w: %q and %q claim local axes [%d,%d] and [%d,%d] of the same backend",
					ErrConfig, ErrRangeOverlap, cfg.Networks[i], cfg.Networks[k],
					a.LocalBase, a.LocalTop, b.LocalBase, b.LocalTop)
			}
		}
	}
	return nil
}
