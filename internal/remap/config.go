package remap

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode is the strategy used to build the axis table.
type Mode int

const (
	// ModeNames matches an ordered list of axis names against the names the
	// attached backends report.
	ModeNames Mode = iota + 1
	// ModeRanges maps explicit contiguous ranges of logical axes onto
	// contiguous ranges of backend axes.
	ModeRanges
)

func (m Mode) String() string {
	switch m {
	case ModeNames:
		return "names"
	case ModeRanges:
		return "ranges"
	default:
		return "unknown"
	}
}

// Config selects and parameterises one resolution mode.
//
// Example (name resolution):
//
//	axesNames: [torso_yaw, l_shoulder_pitch, l_elbow]
//
// Example (range mapping):
//
//	networks: [net_larm, net_lhand]
//	joints: 7
//	ranges:
//	  net_larm:  [0, 3, 0, 3]
//	  net_lhand: [[4, 6, 0, 2]]
type Config struct {
	AxesNames []string             `yaml:"axesNames,omitempty" json:"axesNames,omitempty"`
	Networks  []string             `yaml:"networks,omitempty" json:"networks,omitempty"`
	Joints    int                  `yaml:"joints,omitempty" json:"joints,omitempty"`
	Ranges    map[string]Quadruple `yaml:"ranges,omitempty" json:"ranges,omitempty"`

	// Verbose logs every optional capability a backend lacks at attach time.
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	// AllowLocalOverlap accepts range configurations where two shard keys
	// bound to the same backend claim overlapping local axes.
	AllowLocalOverlap bool `yaml:"allowLocalOverlap,omitempty" json:"allowLocalOverlap,omitempty"`

	// ParallelDispatch issues the per-shard calls of a batched operation
	// concurrently.
	ParallelDispatch bool `yaml:"parallelDispatch,omitempty" json:"parallelDispatch,omitempty"`
}

// Quadruple is the inclusive range pair of one range-mapping entry.
type Quadruple struct {
	LogicalBase int
	LogicalTop  int
	LocalBase   int
	LocalTop    int
}

// Len returns the number of axes covered by the logical range.
func (q Quadruple) Len() int { return q.LogicalTop - q.LogicalBase + 1 }

// UnmarshalYAML accepts four bare integers, a single four element list, or
// the legacy whitespace separated string, optionally parenthesised.
func (q *Quadruple) UnmarshalYAML(node *yaml.Node) error {
	var vals []int
	switch node.Kind {
	case yaml.SequenceNode:
		switch {
		case len(node.Content) == 1 && node.Content[0].Kind == yaml.SequenceNode:
			return q.UnmarshalYAML(node.Content[0])
		case len(node.Content) == 4:
			vals = make([]int, 4)
			for i, n := range node.Content {
				if err := n.Decode(&vals[i]); err != nil {
					return fmt.Errorf("line %d: quadruple element %d: %w", n.Line, i, err)
				}
			}
		default:
			return fmt.Errorf("line %d: expected four integers, got %d elements", node.Line, len(node.Content))
		}
	case yaml.ScalarNode:
		fields := strings.Fields(strings.Trim(strings.TrimSpace(node.Value), "()"))
		if len(fields) != 4 {
			return fmt.Errorf("line %d: expected four integers, got %q", node.Line, node.Value)
		}
		vals = make([]int, 4)
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return fmt.Errorf("line %d: quadruple element %d: %w", node.Line, i, err)
			}
			vals[i] = v
		}
	default:
		return fmt.Errorf("line %d: expected a list of four integers", node.Line)
	}
	*q = Quadruple{LogicalBase: vals[0], LogicalTop: vals[1], LocalBase: vals[2], LocalTop: vals[3]}
	return nil
}

// MarshalYAML writes the bare four integer form.
func (q Quadruple) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{q.LogicalBase, q.LogicalTop, q.LocalBase, q.LocalTop} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return node, nil
}

// ParseConfig decodes a YAML document into a Config and validates it.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if _, err := cfg.Mode(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read remapper config: %w", err)
	}
	return ParseConfig(data)
}

// Mode validates the configuration and reports the selected strategy.
func (c Config) Mode() (Mode, error) {
	byNames := len(c.AxesNames) > 0
	byRanges := len(c.Networks) > 0

	switch {
	case byNames && byRanges:
		return 0, configError("both axesNames and networks are set")
	case !byNames && !byRanges:
		return 0, configError("neither axesNames nor networks is set")
	case byNames:
		return ModeNames, nil
	}

	if c.Joints <= 0 {
		return 0, configError("networks requires a positive joints count, got %d", c.Joints)
	}
	seen := make(map[string]bool, len(c.Networks))
	for _, key := range c.Networks {
		if key == "" {
			return 0, configError("empty network key")
		}
		if seen[key] {
			return 0, configError("network %q listed twice", key)
		}
		seen[key] = true
		q, ok := c.Ranges[key]
		if !ok {
			return 0, configError("network %q has no range quadruple", key)
		}
		if q.LogicalTop-q.LogicalBase != q.LocalTop-q.LocalBase {
			return 0, fmt.Errorf("%w: network %q: %w: [%d,%d] vs [%d,%d]", ErrConfig, key, ErrRangeLength,
				q.LogicalBase, q.LogicalTop, q.LocalBase, q.LocalTop)
		}
		if q.LogicalBase < 0 || q.LogicalTop < q.LogicalBase || q.LogicalTop >= c.Joints {
			return 0, configError("network %q: logical range [%d,%d] outside [0,%d)", key, q.LogicalBase, q.LogicalTop, c.Joints)
		}
		if q.LocalBase < 0 {
			return 0, configError("network %q: negative local base %d", key, q.LocalBase)
		}
	}
	return ModeRanges, nil
}
