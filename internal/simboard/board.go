package simboard

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dreamware/axisremap/internal/device"
	"github.com/dreamware/axisremap/internal/storage"
)

var (
	// ErrJointRange is returned for a local index outside the board.
	ErrJointRange = errors.New("joint index out of range")
	// ErrReleased is returned by every call after Release.
	ErrReleased = errors.New("board released")
	// ErrBadBatch is returned when a batched call's slices differ in length.
	ErrBadBatch = errors.New("joints and values differ in length")
)

var (
	_ device.AxisCounter        = (*Board)(nil)
	_ device.AxisInfo           = (*Board)(nil)
	_ device.PositionControl    = (*Board)(nil)
	_ device.PositionDirect     = (*Board)(nil)
	_ device.VelocityControl    = (*Board)(nil)
	_ device.Encoders           = (*Board)(nil)
	_ device.MotorEncoders      = (*Board)(nil)
	_ device.TorqueControl      = (*Board)(nil)
	_ device.ImpedanceControl   = (*Board)(nil)
	_ device.ControlModes       = (*Board)(nil)
	_ device.InteractionModes   = (*Board)(nil)
	_ device.CurrentControl     = (*Board)(nil)
	_ device.PWMControl         = (*Board)(nil)
	_ device.Amplifier          = (*Board)(nil)
	_ device.ControlLimits      = (*Board)(nil)
	_ device.PidControl         = (*Board)(nil)
	_ device.Motor              = (*Board)(nil)
	_ device.ControlCalibration = (*Board)(nil)
	_ device.RemoteCalibrator   = (*Board)(nil)
	_ device.RemoteVariables    = (*Board)(nil)
	_ device.Timed              = (*Board)(nil)
	_ device.RemoteCalibrator   = (*Calibrator)(nil)
)

// Config describes one simulated board.
type Config struct {
	Key       string            `yaml:"key" json:"key"`
	Axes      int               `yaml:"axes" json:"axes"`
	Names     []string          `yaml:"names,omitempty" json:"names,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
}

// Stats counts the calls a board has served.
type Stats struct {
	Reads   uint64 `json:"reads"`   // single-axis reads
	Writes  uint64 `json:"writes"`  // single-axis writes
	Batches uint64 `json:"batches"` // batched calls of either direction
}

type pidState struct {
	gains    device.Pid
	ref      float64
	errLimit float64
	offset   float64
	enabled  bool
}

type axisState struct {
	name  string
	jtype device.JointType

	target, refSpeed, refAcc float64
	direct                   float64
	velocity                 float64
	enc, encSpeed, encAcc    float64

	motEnc, cpr float64

	refTorque, torqueMin, torqueMax float64
	torqueParams                    device.MotorTorqueParameters

	stiffness, damping, impOffset float64

	mode        device.ControlMode
	interaction device.InteractionMode

	refCurrent, currentMin, currentMax float64
	refDuty                            float64

	ampEnabled                          bool
	maxCurrent, nominal, peak, pwmLimit float64

	posMin, posMax, velMin, velMax float64

	pids map[device.PidType]*pidState

	tempLimit, gearbox float64

	calib      device.CalibrationParameters
	calibrated bool
	parked     bool
}

// Board is an in-memory backend that implements every capability group of
// internal/device. Commands take effect immediately: a position move sets
// the encoder, a torque reference is also the measured torque, and so on.
//
// A Board is safe for concurrent use.
type Board struct {
	key   string
	vars  storage.VariableStore
	stats Stats

	mu       sync.RWMutex
	axes     []axisState
	stamp    device.Stamp
	fault    error
	released bool
}

// New creates a board. Missing axis names default to "<key>_<index>".
func New(cfg Config) (*Board, error) {
	if cfg.Axes <= 0 {
		return nil, fmt.Errorf("board %q: axes must be positive, got %d", cfg.Key, cfg.Axes)
	}
	if len(cfg.Names) > cfg.Axes {
		return nil, fmt.Errorf("board %q: %d names for %d axes", cfg.Key, len(cfg.Names), cfg.Axes)
	}
	b := &Board{
		key:  cfg.Key,
		vars: storage.NewMemoryStoreFrom(cfg.Variables),
		axes: make([]axisState, cfg.Axes),
	}
	for i := range b.axes {
		a := &b.axes[i]
		a.name = fmt.Sprintf("%s_%d", cfg.Key, i)
		if i < len(cfg.Names) {
			a.name = cfg.Names[i]
		}
		a.jtype = device.JointRevolute
		a.mode = device.ControlModeIdle
		a.interaction = device.InteractionStiff
		a.cpr = 1
		a.gearbox = 1
		a.torqueMin, a.torqueMax = -10, 10
		a.currentMin, a.currentMax = -5, 5
		a.posMin, a.posMax = -180, 180
		a.velMin, a.velMax = 0, 100
		a.tempLimit = 70
		a.pids = make(map[device.PidType]*pidState, len(pidTypes))
		for _, t := range pidTypes {
			a.pids[t] = &pidState{gains: device.Pid{Scale: 1}}
		}
	}
	return b, nil
}

// MustNew is New for static configurations; it panics on error.
func MustNew(cfg Config) *Board {
	b, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return b
}

// Key returns the board's configured key.
func (b *Board) Key() string { return b.key }

// Stats returns a snapshot of the call counters.
func (b *Board) Stats() Stats {
	return Stats{
		Reads:   atomic.LoadUint64(&b.stats.Reads),
		Writes:  atomic.LoadUint64(&b.stats.Writes),
		Batches: atomic.LoadUint64(&b.stats.Batches),
	}
}

// SetFault makes every subsequent call fail with err. A nil err clears it.
func (b *Board) SetFault(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fault = err
}

// Release implements remap.Releaser. The board refuses calls afterwards.
func (b *Board) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
	return nil
}

// Released reports whether Release has been called.
func (b *Board) Released() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.released
}

// Axes implements device.AxisCounter. It fails while a fault is set.
func (b *Board) Axes() (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.usable(); err != nil {
		return 0, err
	}
	return len(b.axes), nil
}

// LastInputStamp implements device.Timed. The stamp moves on every write.
func (b *Board) LastInputStamp() device.Stamp {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stamp
}

// usable must be called with b.mu held.
func (b *Board) usable() error {
	if b.released {
		return ErrReleased
	}
	return b.fault
}

func (b *Board) axis(j int) (*axisState, error) {
	if j < 0 || j >= len(b.axes) {
		return nil, fmt.Errorf("%w: %d on board %q with %d axes", ErrJointRange, j, b.key, len(b.axes))
	}
	return &b.axes[j], nil
}

func (b *Board) touch() {
	b.stamp.Seq++
	b.stamp.Time = time.Now()
}

// read runs f on axis j under the read lock.
func read[T any](b *Board, j int, f func(a *axisState) T) (T, error) {
	atomic.AddUint64(&b.stats.Reads, 1)
	b.mu.RLock()
	defer b.mu.RUnlock()

	var zero T
	if err := b.usable(); err != nil {
		return zero, err
	}
	a, err := b.axis(j)
	if err != nil {
		return zero, err
	}
	return f(a), nil
}

// write runs f on axis j under the write lock.
func (b *Board) write(j int, f func(a *axisState)) error {
	atomic.AddUint64(&b.stats.Writes, 1)
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.usable(); err != nil {
		return err
	}
	a, err := b.axis(j)
	if err != nil {
		return err
	}
	f(a)
	b.touch()
	return nil
}

// readMany fills out[i] from joints[i].
func readMany[T any](b *Board, joints []int, out []T, f func(a *axisState) T) error {
	atomic.AddUint64(&b.stats.Batches, 1)
	if len(joints) != len(out) {
		return ErrBadBatch
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.usable(); err != nil {
		return err
	}
	for i, j := range joints {
		a, err := b.axis(j)
		if err != nil {
			return err
		}
		out[i] = f(a)
	}
	return nil
}

// writeMany applies in[i] to joints[i]. Indices are checked before any
// axis is modified.
func writeMany[T any](b *Board, joints []int, in []T, f func(a *axisState, v T)) error {
	atomic.AddUint64(&b.stats.Batches, 1)
	if len(joints) != len(in) {
		return ErrBadBatch
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.usable(); err != nil {
		return err
	}
	for _, j := range joints {
		if _, err := b.axis(j); err != nil {
			return err
		}
	}
	for i, j := range joints {
		f(&b.axes[j], in[i])
	}
	b.touch()
	return nil
}

var pidTypes = []device.PidType{device.PidPosition, device.PidVelocity, device.PidTorque, device.PidCurrent}

// pid returns the loop of type t. Unknown types get a throwaway loop so a
// bad request never mutates the map under a read lock.
func (a *axisState) pid(t device.PidType) *pidState {
	if p, ok := a.pids[t]; ok {
		return p
	}
	return &pidState{}
}

// inspect runs f on axis j under the read lock, for reads with several
// results.
func (b *Board) inspect(j int, f func(a *axisState)) error {
	_, err := read(b, j, func(a *axisState) struct{} {
		f(a)
		return struct{}{}
	})
	return err
}
