package simboard

import (
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

// Amplifier status words.
const (
	AmpOff = 0
	AmpOn  = 1
)

// supplyVoltage is what every simulated board reports.
const supplyVoltage = 48.0

func (b *Board) EnableAmp(j int) error {
	return b.write(j, func(a *axisState) { a.ampEnabled = true })
}

func (b *Board) DisableAmp(j int) error {
	return b.write(j, func(a *axisState) { a.ampEnabled = false })
}

func (b *Board) AmpStatus(j int) (int, error) {
	return read(b, j, func(a *axisState) int {
		if a.ampEnabled {
			return AmpOn
		}
		return AmpOff
	})
}

func (b *Board) MaxCurrent(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.maxCurrent })
}

func (b *Board) SetMaxCurrent(j int, v float64) error {
	return b.write(j, func(a *axisState) { a.maxCurrent = v })
}

func (b *Board) NominalCurrent(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.nominal })
}

func (b *Board) SetNominalCurrent(m int, v float64) error {
	return b.write(m, func(a *axisState) { a.nominal = v })
}

func (b *Board) PeakCurrent(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.peak })
}

func (b *Board) SetPeakCurrent(m int, v float64) error {
	return b.write(m, func(a *axisState) { a.peak = v })
}

func (b *Board) PWMLimit(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.pwmLimit })
}

func (b *Board) SetPWMLimit(m int, v float64) error {
	return b.write(m, func(a *axisState) { a.pwmLimit = v })
}

func (b *Board) PowerSupplyVoltage(m int) (float64, error) {
	return read(b, m, func(*axisState) float64 { return supplyVoltage })
}

func (b *Board) Limits(j int) (min, max float64, err error) {
	err = b.inspect(j, func(a *axisState) { min, max = a.posMin, a.posMax })
	return min, max, err
}

func (b *Board) SetLimits(j int, min, max float64) error {
	if min > max {
		return fmt.Errorf("position limits [%g, %g] are inverted", min, max)
	}
	return b.write(j, func(a *axisState) { a.posMin, a.posMax = min, max })
}

func (b *Board) VelLimits(j int) (min, max float64, err error) {
	err = b.inspect(j, func(a *axisState) { min, max = a.velMin, a.velMax })
	return min, max, err
}

func (b *Board) SetVelLimits(j int, min, max float64) error {
	if min > max {
		return fmt.Errorf("velocity limits [%g, %g] are inverted", min, max)
	}
	return b.write(j, func(a *axisState) { a.velMin, a.velMax = min, max })
}

func (b *Board) SetPid(t device.PidType, j int, p device.Pid) error {
	return b.write(j, func(a *axisState) { a.pid(t).gains = p })
}

func (b *Board) Pid(t device.PidType, j int) (device.Pid, error) {
	return read(b, j, func(a *axisState) device.Pid { return a.pid(t).gains })
}

func (b *Board) SetPidReference(t device.PidType, j int, ref float64) error {
	return b.write(j, func(a *axisState) { a.pid(t).ref = ref })
}

func (b *Board) PidReference(t device.PidType, j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.pid(t).ref })
}

func (b *Board) SetPidErrorLimit(t device.PidType, j int, limit float64) error {
	return b.write(j, func(a *axisState) { a.pid(t).errLimit = limit })
}

func (b *Board) PidErrorLimit(t device.PidType, j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.pid(t).errLimit })
}

// PidError is zero: the simulated loops track their reference exactly.
func (b *Board) PidError(t device.PidType, j int) (float64, error) {
	return read(b, j, func(*axisState) float64 { return 0 })
}

// PidOutput is the reference scaled by Kp, plus the offset, while enabled.
func (b *Board) PidOutput(t device.PidType, j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 {
		p := a.pid(t)
		if !p.enabled {
			return 0
		}
		return p.ref*p.gains.Kp + p.offset
	})
}

func (b *Board) SetPidOffset(t device.PidType, j int, v float64) error {
	return b.write(j, func(a *axisState) { a.pid(t).offset = v })
}

func (b *Board) ResetPid(t device.PidType, j int) error {
	return b.write(j, func(a *axisState) {
		p := a.pid(t)
		p.ref, p.offset = 0, 0
	})
}

func (b *Board) EnablePid(t device.PidType, j int) error {
	return b.write(j, func(a *axisState) { a.pid(t).enabled = true })
}

func (b *Board) DisablePid(t device.PidType, j int) error {
	return b.write(j, func(a *axisState) { a.pid(t).enabled = false })
}

func (b *Board) IsPidEnabled(t device.PidType, j int) (bool, error) {
	return read(b, j, func(a *axisState) bool { return a.pid(t).enabled })
}

// Temperature follows the absolute reference current.
func (b *Board) Temperature(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 {
		c := a.refCurrent
		if c < 0 {
			c = -c
		}
		return 25 + 5*c
	})
}

func (b *Board) TemperatureLimit(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.tempLimit })
}

func (b *Board) SetTemperatureLimit(m int, v float64) error {
	return b.write(m, func(a *axisState) { a.tempLimit = v })
}

func (b *Board) GearboxRatio(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.gearbox })
}

func (b *Board) SetGearboxRatio(m int, v float64) error {
	if v == 0 {
		return fmt.Errorf("gearbox ratio must be non-zero")
	}
	return b.write(m, func(a *axisState) { a.gearbox = v })
}
