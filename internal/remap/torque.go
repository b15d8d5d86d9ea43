package remap

import (
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

func (r *Remapper) RefTorque(j int) (float64, error) {
	return query(r, j, capTorque, device.TorqueControl.RefTorque)
}

func (r *Remapper) RefTorqueAll(out []float64) error {
	return queryEach(r, everyAxis, capTorque, device.TorqueControl.RefTorque, out)
}

func (r *Remapper) SetRefTorque(j int, t float64) error {
	return set(r, j, capTorque, device.TorqueControl.SetRefTorque, t)
}

func (r *Remapper) SetRefTorqueAll(ts []float64) error {
	return setMany(r, everyAxis, capTorque, floatScratch, device.TorqueControl.SetRefTorquesMany, ts)
}

func (r *Remapper) SetRefTorqueSelected(axes []int, ts []float64) error {
	return setMany(r, subset(axes), capTorque, floatScratch, device.TorqueControl.SetRefTorquesMany, ts)
}

// Torque returns the measured torque of axis j.
func (r *Remapper) Torque(j int) (float64, error) {
	return query(r, j, capTorque, device.TorqueControl.Torque)
}

func (r *Remapper) TorqueAll(out []float64) error {
	return queryEach(r, everyAxis, capTorque, device.TorqueControl.Torque, out)
}

func (r *Remapper) TorqueRange(j int) (min, max float64, err error) {
	err = on(r, j, capTorque, func(t device.TorqueControl, local int) error {
		var err error
		min, max, err = t.TorqueRange(local)
		return err
	})
	return min, max, err
}

func (r *Remapper) TorqueRangeAll(mins, maxs []float64) error {
	if len(mins) != len(maxs) {
		return fmt.Errorf("%w: %d minimums, %d maximums", ErrLengthMismatch, len(mins), len(maxs))
	}
	clear(mins)
	clear(maxs)
	return eachAxis(r, everyAxis, len(mins), capTorque, func(t device.TorqueControl, i, local int) error {
		lo, hi, err := t.TorqueRange(local)
		if err != nil {
			return err
		}
		mins[i], maxs[i] = lo, hi
		return nil
	})
}

func (r *Remapper) MotorTorqueParams(j int) (device.MotorTorqueParameters, error) {
	return query(r, j, capTorque, device.TorqueControl.MotorTorqueParams)
}

func (r *Remapper) SetMotorTorqueParams(j int, p device.MotorTorqueParameters) error {
	return set(r, j, capTorque, device.TorqueControl.SetMotorTorqueParams, p)
}

// Impedance returns the stiffness and damping of axis j.
func (r *Remapper) Impedance(j int) (stiffness, damping float64, err error) {
	err = on(r, j, capImpedance, func(i device.ImpedanceControl, local int) error {
		var err error
		stiffness, damping, err = i.Impedance(local)
		return err
	})
	return stiffness, damping, err
}

func (r *Remapper) SetImpedance(j int, stiffness, damping float64) error {
	return on(r, j, capImpedance, func(i device.ImpedanceControl, local int) error {
		return i.SetImpedance(local, stiffness, damping)
	})
}

func (r *Remapper) ImpedanceOffset(j int) (float64, error) {
	return query(r, j, capImpedance, device.ImpedanceControl.ImpedanceOffset)
}

func (r *Remapper) SetImpedanceOffset(j int, offset float64) error {
	return set(r, j, capImpedance, device.ImpedanceControl.SetImpedanceOffset, offset)
}

func (r *Remapper) CurrentImpedanceLimit(j int) (device.ImpedanceLimits, error) {
	return query(r, j, capImpedance, device.ImpedanceControl.CurrentImpedanceLimit)
}
