package remap

import (
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

// Current returns the measured current of motor m.
func (r *Remapper) Current(m int) (float64, error) {
	return query(r, m, capCurrent, device.CurrentControl.Current)
}

func (r *Remapper) CurrentAll(out []float64) error {
	return queryEach(r, everyAxis, capCurrent, device.CurrentControl.Current, out)
}

func (r *Remapper) CurrentRange(m int) (min, max float64, err error) {
	err = on(r, m, capCurrent, func(c device.CurrentControl, local int) error {
		var err error
		min, max, err = c.CurrentRange(local)
		return err
	})
	return min, max, err
}

func (r *Remapper) CurrentRangeAll(mins, maxs []float64) error {
	if len(mins) != len(maxs) {
		return fmt.Errorf("%w: %d minimums, %d maximums", ErrLengthMismatch, len(mins), len(maxs))
	}
	clear(mins)
	clear(maxs)
	return eachAxis(r, everyAxis, len(mins), capCurrent, func(c device.CurrentControl, i, local int) error {
		lo, hi, err := c.CurrentRange(local)
		if err != nil {
			return err
		}
		mins[i], maxs[i] = lo, hi
		return nil
	})
}

func (r *Remapper) RefCurrent(m int) (float64, error) {
	return query(r, m, capCurrent, device.CurrentControl.RefCurrent)
}

func (r *Remapper) RefCurrentAll(out []float64) error {
	return getMany(r, everyAxis, capCurrent, floatScratch, device.CurrentControl.RefCurrentsMany, out)
}

func (r *Remapper) RefCurrentSelected(motors []int, out []float64) error {
	return getMany(r, subset(motors), capCurrent, floatScratch, device.CurrentControl.RefCurrentsMany, out)
}

func (r *Remapper) SetRefCurrent(m int, c float64) error {
	return set(r, m, capCurrent, device.CurrentControl.SetRefCurrent, c)
}

func (r *Remapper) SetRefCurrentAll(cs []float64) error {
	return setMany(r, everyAxis, capCurrent, floatScratch, device.CurrentControl.SetRefCurrentsMany, cs)
}

func (r *Remapper) SetRefCurrentSelected(motors []int, cs []float64) error {
	return setMany(r, subset(motors), capCurrent, floatScratch, device.CurrentControl.SetRefCurrentsMany, cs)
}

func (r *Remapper) RefDutyCycle(m int) (float64, error) {
	return query(r, m, capPWM, device.PWMControl.RefDutyCycle)
}

func (r *Remapper) RefDutyCycleAll(out []float64) error {
	return queryEach(r, everyAxis, capPWM, device.PWMControl.RefDutyCycle, out)
}

func (r *Remapper) SetRefDutyCycle(m int, ref float64) error {
	return set(r, m, capPWM, device.PWMControl.SetRefDutyCycle, ref)
}

func (r *Remapper) SetRefDutyCycleAll(refs []float64) error {
	return commandEach(r, everyAxis, capPWM, device.PWMControl.SetRefDutyCycle, refs)
}

// DutyCycle returns the duty cycle currently applied to motor m.
func (r *Remapper) DutyCycle(m int) (float64, error) {
	return query(r, m, capPWM, device.PWMControl.DutyCycle)
}

func (r *Remapper) DutyCycleAll(out []float64) error {
	return queryEach(r, everyAxis, capPWM, device.PWMControl.DutyCycle, out)
}
