package remap

import "github.com/dreamware/axisremap/internal/device"

// CalibrateAxisWithParams starts the backend calibration procedure of
// axis j.
func (r *Remapper) CalibrateAxisWithParams(j int, kind uint, p1, p2, p3 float64) error {
	return on(r, j, capCalibration, func(c device.ControlCalibration, local int) error {
		return c.CalibrateAxisWithParams(local, kind, p1, p2, p3)
	})
}

func (r *Remapper) SetCalibrationParameters(j int, p device.CalibrationParameters) error {
	return set(r, j, capCalibration, device.ControlCalibration.SetCalibrationParameters, p)
}

// CalibrationDone returns nil once axis j finished calibrating.
func (r *Remapper) CalibrationDone(j int) error {
	return on(r, j, capCalibration, device.ControlCalibration.CalibrationDone)
}

// AbortCalibration is broadcast to every shard.
func (r *Remapper) AbortCalibration() error {
	return forEachShard(r, capCalibration, func(c device.ControlCalibration, _ *shardHandle) error {
		return c.AbortCalibration()
	})
}

// AbortPark is broadcast to every shard.
func (r *Remapper) AbortPark() error {
	return forEachShard(r, capCalibration, func(c device.ControlCalibration, _ *shardHandle) error {
		return c.AbortPark()
	})
}

// IsCalibratorDevicePresent reports whether a calibrator backend was
// attached.
func (r *Remapper) IsCalibratorDevicePresent() bool {
	return r.state == StateAttached && r.registry.calibrator != nil
}

// The remote calibrator operations go to the calibrator backend when one is
// attached, addressed by logical index. Otherwise they are routed to the
// shards' own calibrator views.

func (r *Remapper) CalibrateSingleJoint(j int) error {
	return r.calibrateJoint(j, device.RemoteCalibrator.CalibrateSingleJoint)
}

func (r *Remapper) CalibrateWholePart() error {
	return r.calibrateWhole(device.RemoteCalibrator.CalibrateWholePart)
}

func (r *Remapper) HomingSingleJoint(j int) error {
	return r.calibrateJoint(j, device.RemoteCalibrator.HomingSingleJoint)
}

func (r *Remapper) HomingWholePart() error {
	return r.calibrateWhole(device.RemoteCalibrator.HomingWholePart)
}

func (r *Remapper) ParkSingleJoint(j int, wait bool) error {
	return r.calibrateJoint(j, func(c device.RemoteCalibrator, j int) error {
		return c.ParkSingleJoint(j, wait)
	})
}

func (r *Remapper) ParkWholePart() error {
	return r.calibrateWhole(device.RemoteCalibrator.ParkWholePart)
}

func (r *Remapper) QuitCalibrate() error {
	return r.calibrateWhole(device.RemoteCalibrator.QuitCalibrate)
}

func (r *Remapper) QuitPark() error {
	return r.calibrateWhole(device.RemoteCalibrator.QuitPark)
}

func (r *Remapper) calibrateJoint(j int, call func(device.RemoteCalibrator, int) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	if c := r.registry.calibrator; c != nil {
		if _, err := r.table.Locate(j); err != nil {
			return err
		}
		if err := call(c, j); err != nil {
			return &AxisError{Axis: j, Err: err}
		}
		return nil
	}
	return on(r, j, capRemoteCalibrator, call)
}

func (r *Remapper) calibrateWhole(call func(device.RemoteCalibrator) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	if c := r.registry.calibrator; c != nil {
		return call(c)
	}
	return forEachShard(r, capRemoteCalibrator, func(c device.RemoteCalibrator, _ *shardHandle) error {
		return call(c)
	})
}
