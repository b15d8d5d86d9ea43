package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dreamware/axisremap/internal/remap"
	"github.com/dreamware/axisremap/internal/simboard"
)

// fileConfig is the daemon's configuration file: the remapper settings and
// the simulated boards it attaches to.
//
//	remapper:
//	  axesNames: [a0, a1, b0, b1, b2, a2]
//	boards:
//	  - {key: A, axes: 3, names: [a0, a1, a2]}
//	  - {key: B, axes: 3, names: [b0, b1, b2], variables: {gain: "1.5"}}
//	calibrator: true
//	healthInterval: 2s
type fileConfig struct {
	Remapper       remap.Config      `yaml:"remapper"`
	Boards         []simboard.Config `yaml:"boards"`
	Calibrator     bool              `yaml:"calibrator"`
	HealthInterval time.Duration     `yaml:"healthInterval"`
}

const defaultHealthInterval = 5 * time.Second

func parseFile(data []byte) (fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if len(fc.Boards) == 0 {
		return fileConfig{}, errors.New("config lists no boards")
	}
	if _, err := fc.Remapper.Mode(); err != nil {
		return fileConfig{}, err
	}
	if fc.HealthInterval < 0 {
		return fileConfig{}, fmt.Errorf("healthInterval %v is negative", fc.HealthInterval)
	}
	if fc.HealthInterval == 0 {
		fc.HealthInterval = defaultHealthInterval
	}
	return fc, nil
}

func loadFile(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, errors.New("no config file given (--config or REMAPPERD_CONFIG)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	return parseFile(data)
}

// backends builds the simulated boards, plus a calibrator when requested.
func (fc fileConfig) backends() ([]remap.Backend, error) {
	out := make([]remap.Backend, 0, len(fc.Boards)+1)
	for _, bc := range fc.Boards {
		b, err := simboard.New(bc)
		if err != nil {
			return nil, err
		}
		out = append(out, remap.Backend{Key: bc.Key, Device: b})
	}
	if fc.Calibrator {
		out = append(out, remap.Backend{Key: "calibrator", Device: simboard.NewCalibrator()})
	}
	return out, nil
}
