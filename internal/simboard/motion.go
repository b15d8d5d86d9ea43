package simboard

import "github.com/dreamware/axisremap/internal/device"

func (b *Board) AxisName(j int) (string, error) {
	return read(b, j, func(a *axisState) string { return a.name })
}

func (b *Board) JointType(j int) (device.JointType, error) {
	return read(b, j, func(a *axisState) device.JointType { return a.jtype })
}

func moveTo(a *axisState, ref float64) {
	a.target = ref
	a.enc = ref
	a.motEnc = ref * a.gearbox
}

func (b *Board) PositionMove(j int, ref float64) error {
	return b.write(j, func(a *axisState) { moveTo(a, ref) })
}

func (b *Board) PositionMoveMany(joints []int, refs []float64) error {
	return writeMany(b, joints, refs, moveTo)
}

func (b *Board) RelativeMove(j int, delta float64) error {
	return b.write(j, func(a *axisState) { moveTo(a, a.target+delta) })
}

func (b *Board) RelativeMoveMany(joints []int, deltas []float64) error {
	return writeMany(b, joints, deltas, func(a *axisState, d float64) { moveTo(a, a.target+d) })
}

// CheckMotionDone compares encoder and target. Moves complete instantly,
// so only SetEncoder or ResetEncoder can leave them apart.
func (b *Board) CheckMotionDone(j int) (bool, error) {
	return read(b, j, func(a *axisState) bool { return a.enc == a.target })
}

func (b *Board) SetRefSpeed(j int, sp float64) error {
	return b.write(j, func(a *axisState) { a.refSpeed = sp })
}

func (b *Board) SetRefSpeedsMany(joints []int, spds []float64) error {
	return writeMany(b, joints, spds, func(a *axisState, v float64) { a.refSpeed = v })
}

func (b *Board) RefSpeed(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.refSpeed })
}

func (b *Board) RefSpeedsMany(joints []int, out []float64) error {
	return readMany(b, joints, out, func(a *axisState) float64 { return a.refSpeed })
}

func (b *Board) SetRefAcceleration(j int, acc float64) error {
	return b.write(j, func(a *axisState) { a.refAcc = acc })
}

func (b *Board) SetRefAccelerationsMany(joints []int, accs []float64) error {
	return writeMany(b, joints, accs, func(a *axisState, v float64) { a.refAcc = v })
}

func (b *Board) RefAcceleration(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.refAcc })
}

func (b *Board) RefAccelerationsMany(joints []int, out []float64) error {
	return readMany(b, joints, out, func(a *axisState) float64 { return a.refAcc })
}

func (b *Board) TargetPosition(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.target })
}

func (b *Board) TargetPositionsMany(joints []int, out []float64) error {
	return readMany(b, joints, out, func(a *axisState) float64 { return a.target })
}

func stop(a *axisState) {
	a.target = a.enc
	a.velocity = 0
}

func (b *Board) Stop(j int) error {
	return b.write(j, stop)
}

func (b *Board) StopMany(joints []int) error {
	return writeMany(b, joints, make([]struct{}, len(joints)), func(a *axisState, _ struct{}) { stop(a) })
}

func (b *Board) SetPosition(j int, ref float64) error {
	return b.write(j, func(a *axisState) {
		a.direct = ref
		a.enc = ref
	})
}

func (b *Board) SetPositionsMany(joints []int, refs []float64) error {
	return writeMany(b, joints, refs, func(a *axisState, v float64) {
		a.direct = v
		a.enc = v
	})
}

func (b *Board) RefPosition(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.direct })
}

func (b *Board) RefPositionsMany(joints []int, out []float64) error {
	return readMany(b, joints, out, func(a *axisState) float64 { return a.direct })
}

func (b *Board) VelocityMove(j int, v float64) error {
	return b.write(j, func(a *axisState) {
		a.velocity = v
		a.encSpeed = v
	})
}

func (b *Board) VelocityMoveMany(joints []int, vs []float64) error {
	return writeMany(b, joints, vs, func(a *axisState, v float64) {
		a.velocity = v
		a.encSpeed = v
	})
}

func (b *Board) RefVelocity(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.velocity })
}

func (b *Board) RefVelocitiesMany(joints []int, out []float64) error {
	return readMany(b, joints, out, func(a *axisState) float64 { return a.velocity })
}

func (b *Board) Encoder(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.enc })
}

func (b *Board) EncoderTimed(j int) (float64, device.Stamp, error) {
	var (
		v     float64
		stamp device.Stamp
	)
	err := b.inspect(j, func(a *axisState) {
		v = a.enc
		stamp = b.stamp
	})
	return v, stamp, err
}

func (b *Board) EncoderSpeed(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.encSpeed })
}

func (b *Board) EncoderAcceleration(j int) (float64, error) {
	return read(b, j, func(a *axisState) float64 { return a.encAcc })
}

func (b *Board) SetEncoder(j int, v float64) error {
	return b.write(j, func(a *axisState) { a.enc = v })
}

func (b *Board) ResetEncoder(j int) error {
	return b.SetEncoder(j, 0)
}

func (b *Board) MotorEncoder(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.motEnc })
}

func (b *Board) MotorEncoderSpeed(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.encSpeed * a.gearbox })
}

func (b *Board) SetMotorEncoder(m int, v float64) error {
	return b.write(m, func(a *axisState) { a.motEnc = v })
}

func (b *Board) ResetMotorEncoder(m int) error {
	return b.SetMotorEncoder(m, 0)
}

func (b *Board) MotorEncoderCountsPerRevolution(m int) (float64, error) {
	return read(b, m, func(a *axisState) float64 { return a.cpr })
}

func (b *Board) SetMotorEncoderCountsPerRevolution(m int, cpr float64) error {
	return b.write(m, func(a *axisState) { a.cpr = cpr })
}
