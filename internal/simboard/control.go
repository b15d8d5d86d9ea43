package simboard

import (
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

func (b *Board) RefTorque(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.refTorque })
}

func (b *Board) SetRefTorque(j int, t float64) error {
	return b.write(j, func(a *axisState) { a.refTorque = t })
}

func (b *Board) SetRefTorquesMany(joints []int, ts []float64) error {
	return writeMany(b, joints, ts, func(a *axisState, v float64) { a.refTorque = v })
}

// Torque reports the reference: the simulated joint tracks it exactly.
func (b *Board) Torque(j int) (float64, error) {
	return b.RefTorque(j)
}

func (b *Board) TorqueRange(j int) (min, max float64, err error) {
	err = b.inspect(j, func(a *axisState) { min, max = a.torqueMin, a.torqueMax })
	return min, max, err
}

func (b *Board) MotorTorqueParams(j int) (device.MotorTorqueParameters, error) {
	return read(b, j, func(a *axisState) device.MotorTorqueParameters { return a.torqueParams })
}

func (b *Board) SetMotorTorqueParams(j int, p device.MotorTorqueParameters) error {
	return b.write(j, func(a *axisState) { a.torqueParams = p })
}

var impedanceLimits = device.ImpedanceLimits{MinStiffness: 0, MaxStiffness: 10, MinDamping: 0, MaxDamping: 1}

func (b *Board) Impedance(j int) (stiffness, damping float64, err error) {
	err = b.inspect(j, func(a *axisState) { stiffness, damping = a.stiffness, a.damping })
	return stiffness, damping, err
}

func (b *Board) SetImpedance(j int, stiffness, damping float64) error {
	if stiffness < impedanceLimits.MinStiffness || stiffness > impedanceLimits.MaxStiffness ||
		damping < impedanceLimits.MinDamping || damping > impedanceLimits.MaxDamping {
		return fmt.Errorf("impedance (%g, %g) outside limits", stiffness, damping)
	}
	return b.write(j, func(a *axisState) { a.stiffness, a.damping = stiffness, damping })
}

func (b *Board) ImpedanceOffset(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.impOffset })
}

func (b *Board) SetImpedanceOffset(j int, offset float64) error {
	return b.write(j, func(a *axisState) { a.impOffset = offset })
}

func (b *Board) CurrentImpedanceLimit(j int) (device.ImpedanceLimits, error) {
	return read(b, j, func(*axisState) device.ImpedanceLimits { return impedanceLimits })
}

func (b *Board) ControlMode(j int) (device.ControlMode, error) {
	return read(b, j, func(a *axisState) device.ControlMode { return a.mode })
}

func (b *Board) ControlModesMany(joints []int, out []device.ControlMode) error {
	return readMany(b, joints, out, func(a *axisState) device.ControlMode { return a.mode })
}

func (b *Board) SetControlMode(j int, m device.ControlMode) error {
	return b.write(j, func(a *axisState) { a.mode = m })
}

func (b *Board) SetControlModesMany(joints []int, modes []device.ControlMode) error {
	return writeMany(b, joints, modes, func(a *axisState, m device.ControlMode) { a.mode = m })
}

func (b *Board) InteractionMode(j int) (device.InteractionMode, error) {
	return read(b, j, func(a *axisState) device.InteractionMode { return a.interaction })
}

func (b *Board) InteractionModesMany(joints []int, out []device.InteractionMode) error {
	return readMany(b, joints, out, func(a *axisState) device.InteractionMode { return a.interaction })
}

func (b *Board) SetInteractionMode(j int, m device.InteractionMode) error {
	return b.write(j, func(a *axisState) { a.interaction = m })
}

func (b *Board) SetInteractionModesMany(joints []int, modes []device.InteractionMode) error {
	return writeMany(b, joints, modes, func(a *axisState, m device.InteractionMode) { a.interaction = m })
}

// Current reports the reference: the simulated driver tracks it exactly.
func (b *Board) Current(m int) (float64, error) {
	return b.RefCurrent(m)
}

func (b *Board) CurrentRange(m int) (min, max float64, err error) {
	err = b.inspect(m, func(a *axisState) { min, max = a.currentMin, a.currentMax })
	return min, max, err
}

func (b *Board) RefCurrent(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.refCurrent })
}

func (b *Board) RefCurrentsMany(motors []int, out []float64) error {
	return readMany(b, motors, out, func(a *axisState) float64 { return a.refCurrent })
}

func (b *Board) SetRefCurrent(m int, c float64) error {
	return b.write(m, func(a *axisState) { a.refCurrent = c })
}

func (b *Board) SetRefCurrentsMany(motors []int, cs []float64) error {
	return writeMany(b, motors, cs, func(a *axisState, v float64) { a.refCurrent = v })
}

func (b *Board) RefDutyCycle(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.refDuty })
}

func (b *Board) SetRefDutyCycle(m int, ref float64) error {
	return b.write(m, func(a *axisState) { a.refDuty = ref })
}

// DutyCycle is the reference clipped to the PWM limit, when one is set.
func (b *Board) DutyCycle(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 {
		if a.pwmLimit > 0 && a.refDuty > a.pwmLimit {
			return a.pwmLimit
		}
		return a.refDuty
	})
}
