package simboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dreamware/axisremap/internal/device"
)

// ErrNotCalibrated is returned by CalibrationDone before a calibration ran.
var ErrNotCalibrated = errors.New("axis not calibrated")

func (b *Board) CalibrateAxisWithParams(j int, kind uint, p1, p2, p3 float64) error {
	return b.write(j, func(a *axisState) {
		a.calib = device.CalibrationParameters{Type: kind, Param: []float64{p1, p2, p3}}
		a.calibrated = true
		moveTo(a, 0)
	})
}

func (b *Board) SetCalibrationParameters(j int, p device.CalibrationParameters) error {
	p.Param = append([]float64(nil), p.Param...)
	return b.write(j, func(a *axisState) { a.calib = p })
}

func (b *Board) CalibrationDone(j int) error {
	done, err := read(b, j, func(a *axisState) bool { return a.calibrated })
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("%w: %d", ErrNotCalibrated, j)
	}
	return nil
}

func (b *Board) AbortCalibration() error { return b.usableNow() }

func (b *Board) AbortPark() error { return b.usableNow() }

func (b *Board) usableNow() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.usable()
}

// allAxes applies f to every axis under the write lock.
func (b *Board) allAxes(f func(a *axisState)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.usable(); err != nil {
		return err
	}
	for i := range b.axes {
		f(&b.axes[i])
	}
	b.touch()
	return nil
}

func calibrate(a *axisState) {
	a.calibrated = true
	moveTo(a, 0)
}

func park(a *axisState) {
	a.parked = true
	moveTo(a, 0)
}

func (b *Board) CalibrateSingleJoint(j int) error { return b.write(j, calibrate) }

func (b *Board) CalibrateWholePart() error { return b.allAxes(calibrate) }

func (b *Board) HomingSingleJoint(j int) error {
	return b.write(j, func(a *axisState) { moveTo(a, 0) })
}

func (b *Board) HomingWholePart() error {
	return b.allAxes(func(a *axisState) { moveTo(a, 0) })
}

// ParkSingleJoint parks axis j. Parking is instantaneous so wait is ignored.
func (b *Board) ParkSingleJoint(j int, wait bool) error { return b.write(j, park) }

func (b *Board) ParkWholePart() error { return b.allAxes(park) }

func (b *Board) QuitCalibrate() error { return b.usableNow() }

func (b *Board) QuitPark() error { return b.usableNow() }

// IsParked reports whether axis j has been parked.
func (b *Board) IsParked(j int) (bool, error) {
	return read(b, j, func(a *axisState) bool { return a.parked })
}

// RemoteVariable implements device.RemoteVariables on top of the board's
// variable store.
func (b *Board) RemoteVariable(key string) ([]byte, error) {
	if err := b.usableNow(); err != nil {
		return nil, err
	}
	return b.vars.Get(key)
}

func (b *Board) SetRemoteVariable(key string, val []byte) error {
	if err := b.usableNow(); err != nil {
		return err
	}
	return b.vars.Put(key, val)
}

func (b *Board) RemoteVariablesList() ([]string, error) {
	if err := b.usableNow(); err != nil {
		return nil, err
	}
	return b.vars.Keys(), nil
}

// Calibrator is a stand-alone calibration device. It addresses axes by
// logical index and only records what it was asked to do.
type Calibrator struct {
	mu    sync.Mutex
	calls []string
}

// NewCalibrator returns an idle calibrator.
func NewCalibrator() *Calibrator { return &Calibrator{} }

func (c *Calibrator) record(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
	return nil
}

// Calls returns the requests received so far, in order.
func (c *Calibrator) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *Calibrator) CalibrateSingleJoint(j int) error { return c.record("calibrate %d", j) }
func (c *Calibrator) CalibrateWholePart() error        { return c.record("calibrate all") }
func (c *Calibrator) HomingSingleJoint(j int) error    { return c.record("homing %d", j) }
func (c *Calibrator) HomingWholePart() error           { return c.record("homing all") }
func (c *Calibrator) ParkSingleJoint(j int, wait bool) error {
	return c.record("park %d wait=%t", j, wait)
}
func (c *Calibrator) ParkWholePart() error { return c.record("park all") }
func (c *Calibrator) QuitCalibrate() error { return c.record("quit calibrate") }
func (c *Calibrator) QuitPark() error      { return c.record("quit park") }
