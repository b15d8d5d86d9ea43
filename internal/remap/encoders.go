package remap

import (
	"fmt"

	"github.com/dreamware/axisremap/internal/device"
)

func (r *Remapper) Encoder(j int) (float64, error) {
	return query(r, j, capEncoders, device.Encoders.Encoder)
}

func (r *Remapper) EncoderAll(out []float64) error {
	return queryEach(r, everyAxis, capEncoders, device.Encoders.Encoder, out)
}

// EncoderTimed returns the reading of axis j and when it was acquired.
func (r *Remapper) EncoderTimed(j int) (float64, device.Stamp, error) {
	var stamp device.Stamp
	v, err := query(r, j, capEncoders, func(e device.Encoders, local int) (float64, error) {
		v, s, err := e.EncoderTimed(local)
		stamp = s
		return v, err
	})
	return v, stamp, err
}

// EncoderTimedAll fills out and stamps in logical order.
func (r *Remapper) EncoderTimedAll(out []float64, stamps []device.Stamp) error {
	if len(stamps) != len(out) {
		return fmt.Errorf("%w: %d stamps for %d values", ErrLengthMismatch, len(stamps), len(out))
	}
	clear(out)
	clear(stamps)
	return eachAxis(r, everyAxis, len(out), capEncoders, func(e device.Encoders, i, local int) error {
		v, s, err := e.EncoderTimed(local)
		if err != nil {
			return err
		}
		out[i], stamps[i] = v, s
		return nil
	})
}

func (r *Remapper) EncoderSpeed(j int) (float64, error) {
	return query(r, j, capEncoders, device.Encoders.EncoderSpeed)
}

func (r *Remapper) EncoderSpeedAll(out []float64) error {
	return queryEach(r, everyAxis, capEncoders, device.Encoders.EncoderSpeed, out)
}

func (r *Remapper) EncoderAcceleration(j int) (float64, error) {
	return query(r, j, capEncoders, device.Encoders.EncoderAcceleration)
}

func (r *Remapper) EncoderAccelerationAll(out []float64) error {
	return queryEach(r, everyAxis, capEncoders, device.Encoders.EncoderAcceleration, out)
}

func (r *Remapper) SetEncoder(j int, v float64) error {
	return set(r, j, capEncoders, device.Encoders.SetEncoder, v)
}

func (r *Remapper) SetEncoderAll(vs []float64) error {
	return commandEach(r, everyAxis, capEncoders, device.Encoders.SetEncoder, vs)
}

func (r *Remapper) ResetEncoder(j int) error {
	return on(r, j, capEncoders, device.Encoders.ResetEncoder)
}

func (r *Remapper) ResetEncoderAll() error {
	return eachAxis(r, everyAxis, -1, capEncoders, func(e device.Encoders, _, local int) error {
		return e.ResetEncoder(local)
	})
}

// NumberOfMotorEncoders equals the number of logical axes.
func (r *Remapper) NumberOfMotorEncoders() (int, error) { return r.Axes() }

func (r *Remapper) MotorEncoder(m int) (float64, error) {
	return query(r, m, capMotorEncoders, device.MotorEncoders.MotorEncoder)
}

func (r *Remapper) MotorEncoderAll(out []float64) error {
	return queryEach(r, everyAxis, capMotorEncoders, device.MotorEncoders.MotorEncoder, out)
}

func (r *Remapper) MotorEncoderSpeed(m int) (float64, error) {
	return query(r, m, capMotorEncoders, device.MotorEncoders.MotorEncoderSpeed)
}

func (r *Remapper) MotorEncoderSpeedAll(out []float64) error {
	return queryEach(r, everyAxis, capMotorEncoders, device.MotorEncoders.MotorEncoderSpeed, out)
}

func (r *Remapper) SetMotorEncoder(m int, v float64) error {
	return set(r, m, capMotorEncoders, device.MotorEncoders.SetMotorEncoder, v)
}

func (r *Remapper) ResetMotorEncoder(m int) error {
	return on(r, m, capMotorEncoders, device.MotorEncoders.ResetMotorEncoder)
}

func (r *Remapper) ResetMotorEncoderAll() error {
	return eachAxis(r, everyAxis, -1, capMotorEncoders, func(e device.MotorEncoders, _, local int) error {
		return e.ResetMotorEncoder(local)
	})
}

func (r *Remapper) MotorEncoderCountsPerRevolution(m int) (float64, error) {
	return query(r, m, capMotorEncoders, device.MotorEncoders.MotorEncoderCountsPerRevolution)
}

func (r *Remapper) SetMotorEncoderCountsPerRevolution(m int, cpr float64) error {
	return set(r, m, capMotorEncoders, device.MotorEncoders.SetMotorEncoderCountsPerRevolution, cpr)
}
