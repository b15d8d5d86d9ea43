package remap

import "fmt"

// AxisLocation is where a logical axis lives: the owning shard and the
// axis index inside that shard.
type AxisLocation struct {
	Shard int `json:"shard" yaml:"shard"`
	Local int `json:"local" yaml:"local"`
}

func (l AxisLocation) String() string {
	return fmt.Sprintf("(shard%d,%d)", l.Shard, l.Local)
}

// Table maps every logical axis to its AxisLocation. It is built once by
// the resolver and never mutated afterwards, so it may be read concurrently
// without locking.
type Table struct {
	locs []AxisLocation
}

// NewTable wraps locs. The slice is copied.
func NewTable(locs []AxisLocation) *Table {
	return &Table{locs: append([]AxisLocation(nil), locs...)}
}

// Len returns the number of logical axes.
func (t *Table) Len() int { return len(t.locs) }

// Locate returns the location of a logical axis.
func (t *Table) Locate(axis int) (AxisLocation, error) {
	if axis < 0 || axis >= len(t.locs) {
		return AxisLocation{}, fmt.Errorf("%w: %d not in [0, %d)", ErrAxisOutOfRange, axis, len(t.locs))
	}
	return t.locs[axis], nil
}

// Locations returns a copy of the whole table in logical order.
func (t *Table) Locations() []AxisLocation {
	return append([]AxisLocation(nil), t.locs...)
}

// Validate checks the coverage invariant: each entry names an existing shard
// and a local index below that shard's axis count.
func (t *Table) Validate(shardAxes []int) error {
	for axis, loc := range t.locs {
		if loc.Shard < 0 || loc.Shard >= len(shardAxes) {
			return fmt.Errorf("%w: axis %d routed to unknown shard %d", ErrConfig, axis, loc.Shard)
		}
		if loc.Local < 0 || loc.Local >= shardAxes[loc.Shard] {
			return fmt.Errorf("%w: axis %d routed to local %d, shard %d has %d axes",
				ErrConfig, axis, loc.Local, loc.Shard, shardAxes[loc.Shard])
		}
	}
	return nil
}

// countPerShard returns how many logical axes each shard owns.
func (t *Table) countPerShard(nShards int) []int {
	counts := make([]int, nShards)
	for _, loc := range t.locs {
		counts[loc.Shard]++
	}
	return counts
}
