package remap

import "github.com/dreamware/axisremap/internal/device"

func (r *Remapper) EnableAmp(j int) error {
	return on(r, j, capAmplifier, device.Amplifier.EnableAmp)
}

func (r *Remapper) DisableAmp(j int) error {
	return on(r, j, capAmplifier, device.Amplifier.DisableAmp)
}

// AmpStatus returns the backend specific status word of axis j.
func (r *Remapper) AmpStatus(j int) (int, error) {
	return query(r, j, capAmplifier, device.Amplifier.AmpStatus)
}

func (r *Remapper) AmpStatusAll(out []int) error {
	return queryEach(r, everyAxis, capAmplifier, device.Amplifier.AmpStatus, out)
}

func (r *Remapper) MaxCurrent(j int) (float64, error) {
	return query(r, j, capAmplifier, device.Amplifier.MaxCurrent)
}

func (r *Remapper) SetMaxCurrent(j int, v float64) error {
	return set(r, j, capAmplifier, device.Amplifier.SetMaxCurrent, v)
}

func (r *Remapper) NominalCurrent(m int) (float64, error) {
	return query(r, m, capAmplifier, device.Amplifier.NominalCurrent)
}

func (r *Remapper) SetNominalCurrent(m int, v float64) error {
	return set(r, m, capAmplifier, device.Amplifier.SetNominalCurrent, v)
}

func (r *Remapper) PeakCurrent(m int) (float64, error) {
	return query(r, m, capAmplifier, device.Amplifier.PeakCurrent)
}

func (r *Remapper) SetPeakCurrent(m int, v float64) error {
	return set(r, m, capAmplifier, device.Amplifier.SetPeakCurrent, v)
}

func (r *Remapper) PWMLimit(m int) (float64, error) {
	return query(r, m, capAmplifier, device.Amplifier.PWMLimit)
}

func (r *Remapper) SetPWMLimit(m int, v float64) error {
	return set(r, m, capAmplifier, device.Amplifier.SetPWMLimit, v)
}

func (r *Remapper) PowerSupplyVoltage(m int) (float64, error) {
	return query(r, m, capAmplifier, device.Amplifier.PowerSupplyVoltage)
}

// Limits returns the position limits of axis j.
func (r *Remapper) Limits(j int) (min, max float64, err error) {
	err = on(r, j, capLimits, func(l device.ControlLimits, local int) error {
		var err error
		min, max, err = l.Limits(local)
		return err
	})
	return min, max, err
}

func (r *Remapper) SetLimits(j int, min, max float64) error {
	return on(r, j, capLimits, func(l device.ControlLimits, local int) error {
		return l.SetLimits(local, min, max)
	})
}

// VelLimits returns the velocity limits of axis j.
func (r *Remapper) VelLimits(j int) (min, max float64, err error) {
	err = on(r, j, capLimits, func(l device.ControlLimits, local int) error {
		var err error
		min, max, err = l.VelLimits(local)
		return err
	})
	return min, max, err
}

func (r *Remapper) SetVelLimits(j int, min, max float64) error {
	return on(r, j, capLimits, func(l device.ControlLimits, local int) error {
		return l.SetVelLimits(local, min, max)
	})
}

// NumberOfMotors equals the number of logical axes.
func (r *Remapper) NumberOfMotors() (int, error) { return r.Axes() }

func (r *Remapper) Temperature(m int) (float64, error) {
	return query(r, m, capMotor, device.Motor.Temperature)
}

func (r *Remapper) TemperatureAll(out []float64) error {
	return queryEach(r, everyAxis, capMotor, device.Motor.Temperature, out)
}

func (r *Remapper) TemperatureLimit(m int) (float64, error) {
	return query(r, m, capMotor, device.Motor.TemperatureLimit)
}

func (r *Remapper) SetTemperatureLimit(m int, v float64) error {
	return set(r, m, capMotor, device.Motor.SetTemperatureLimit, v)
}

func (r *Remapper) GearboxRatio(m int) (float64, error) {
	return query(r, m, capMotor, device.Motor.GearboxRatio)
}

func (r *Remapper) SetGearboxRatio(m int, v float64) error {
	return set(r, m, capMotor, device.Motor.SetGearboxRatio, v)
}
