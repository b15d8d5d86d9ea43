package remap

import "github.com/dreamware/axisremap/internal/device"

// PositionMove starts a trajectory of axis j towards ref.
func (r *Remapper) PositionMove(j int, ref float64) error {
	return set(r, j, capPosition, device.PositionControl.PositionMove, ref)
}

// PositionMoveAll starts a trajectory on every axis. refs is in logical order.
func (r *Remapper) PositionMoveAll(refs []float64) error {
	return setMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.PositionMoveMany, refs)
}

// PositionMoveSelected starts a trajectory on axes[i] towards refs[i].
func (r *Remapper) PositionMoveSelected(axes []int, refs []float64) error {
	return setMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.PositionMoveMany, refs)
}

func (r *Remapper) RelativeMove(j int, delta float64) error {
	return set(r, j, capPosition, device.PositionControl.RelativeMove, delta)
}

func (r *Remapper) RelativeMoveAll(deltas []float64) error {
	return setMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.RelativeMoveMany, deltas)
}

func (r *Remapper) RelativeMoveSelected(axes []int, deltas []float64) error {
	return setMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.RelativeMoveMany, deltas)
}

// CheckMotionDone reports whether axis j reached its target.
func (r *Remapper) CheckMotionDone(j int) (bool, error) {
	return query(r, j, capPosition, device.PositionControl.CheckMotionDone)
}

// CheckMotionDoneAll reports true only when every axis reached its target.
func (r *Remapper) CheckMotionDoneAll() (bool, error) {
	return r.motionDone(everyAxis)
}

func (r *Remapper) CheckMotionDoneSelected(axes []int) (bool, error) {
	return r.motionDone(subset(axes))
}

func (r *Remapper) motionDone(sel selection) (bool, error) {
	flags := make([]bool, r.width(sel))
	if err := queryEach(r, sel, capPosition, device.PositionControl.CheckMotionDone, flags); err != nil {
		return false, err
	}
	for _, done := range flags {
		if !done {
			return false, nil
		}
	}
	return true, nil
}

func (r *Remapper) SetRefSpeed(j int, sp float64) error {
	return set(r, j, capPosition, device.PositionControl.SetRefSpeed, sp)
}

func (r *Remapper) SetRefSpeedAll(spds []float64) error {
	return setMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.SetRefSpeedsMany, spds)
}

func (r *Remapper) SetRefSpeedSelected(axes []int, spds []float64) error {
	return setMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.SetRefSpeedsMany, spds)
}

func (r *Remapper) RefSpeed(j int) (float64, error) {
	return query(r, j, capPosition, device.PositionControl.RefSpeed)
}

func (r *Remapper) RefSpeedAll(out []float64) error {
	return getMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.RefSpeedsMany, out)
}

func (r *Remapper) RefSpeedSelected(axes []int, out []float64) error {
	return getMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.RefSpeedsMany, out)
}

func (r *Remapper) SetRefAcceleration(j int, acc float64) error {
	return set(r, j, capPosition, device.PositionControl.SetRefAcceleration, acc)
}

func (r *Remapper) SetRefAccelerationAll(accs []float64) error {
	return setMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.SetRefAccelerationsMany, accs)
}

func (r *Remapper) SetRefAccelerationSelected(axes []int, accs []float64) error {
	return setMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.SetRefAccelerationsMany, accs)
}

func (r *Remapper) RefAcceleration(j int) (float64, error) {
	return query(r, j, capPosition, device.PositionControl.RefAcceleration)
}

func (r *Remapper) RefAccelerationAll(out []float64) error {
	return getMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.RefAccelerationsMany, out)
}

func (r *Remapper) RefAccelerationSelected(axes []int, out []float64) error {
	return getMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.RefAccelerationsMany, out)
}

// TargetPosition returns the last position reference sent to axis j.
func (r *Remapper) TargetPosition(j int) (float64, error) {
	return query(r, j, capPosition, device.PositionControl.TargetPosition)
}

func (r *Remapper) TargetPositionAll(out []float64) error {
	return getMany(r, everyAxis, capPosition, floatScratch, device.PositionControl.TargetPositionsMany, out)
}

func (r *Remapper) TargetPositionSelected(axes []int, out []float64) error {
	return getMany(r, subset(axes), capPosition, floatScratch, device.PositionControl.TargetPositionsMany, out)
}

// Stop halts axis j.
func (r *Remapper) Stop(j int) error {
	return on(r, j, capPosition, device.PositionControl.Stop)
}

func (r *Remapper) StopAll() error {
	return commandMany(r, everyAxis, capPosition, device.PositionControl.StopMany)
}

func (r *Remapper) StopSelected(axes []int) error {
	return commandMany(r, subset(axes), capPosition, device.PositionControl.StopMany)
}
