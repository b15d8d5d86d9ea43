package remap

import "github.com/dreamware/axisremap/internal/device"

// capability names one optional view of a shard and how to fetch it from
// the probed handle.
type capability[V any] struct {
	name string
	view func(*shardHandle) V
}

var (
	capAxisInfo = capability[device.AxisInfo]{"axis_info",
		func(h *shardHandle) device.AxisInfo { return h.info }}
	capPosition = capability[device.PositionControl]{"position",
		func(h *shardHandle) device.PositionControl { return h.pos }}
	capPositionDirect = capability[device.PositionDirect]{"position_direct",
		func(h *shardHandle) device.PositionDirect { return h.posDir }}
	capVelocity = capability[device.VelocityControl]{"velocity",
		func(h *shardHandle) device.VelocityControl { return h.vel }}
	capEncoders = capability[device.Encoders]{"encoders",
		func(h *shardHandle) device.Encoders { return h.enc }}
	capMotorEncoders = capability[device.MotorEncoders]{"motor_encoders",
		func(h *shardHandle) device.MotorEncoders { return h.motEnc }}
	capTorque = capability[device.TorqueControl]{"torque",
		func(h *shardHandle) device.TorqueControl { return h.torque }}
	capImpedance = capability[device.ImpedanceControl]{"impedance",
		func(h *shardHandle) device.ImpedanceControl { return h.impedance }}
	capControlMode = capability[device.ControlModes]{"control_mode",
		func(h *shardHandle) device.ControlModes { return h.mode }}
	capInteraction = capability[device.InteractionModes]{"interaction_mode",
		func(h *shardHandle) device.InteractionModes { return h.interaction }}
	capCurrent = capability[device.CurrentControl]{"current",
		func(h *shardHandle) device.CurrentControl { return h.current }}
	capPWM = capability[device.PWMControl]{"pwm",
		func(h *shardHandle) device.PWMControl { return h.pwm }}
	capAmplifier = capability[device.Amplifier]{"amplifier",
		func(h *shardHandle) device.Amplifier { return h.amp }}
	capLimits = capability[device.ControlLimits]{"limits",
		func(h *shardHandle) device.ControlLimits { return h.limits }}
	capPid = capability[device.PidControl]{"pid",
		func(h *shardHandle) device.PidControl { return h.pid }}
	capMotor = capability[device.Motor]{"motor",
		func(h *shardHandle) device.Motor { return h.motor }}
	capCalibration = capability[device.ControlCalibration]{"calibration",
		func(h *shardHandle) device.ControlCalibration { return h.calib }}
	capRemoteCalibrator = capability[device.RemoteCalibrator]{"remote_calibrator",
		func(h *shardHandle) device.RemoteCalibrator { return h.remCalib }}
	capRemoteVariables = capability[device.RemoteVariables]{"remote_variables",
		func(h *shardHandle) device.RemoteVariables { return h.vars }}
	capTimed = capability[device.Timed]{"timed",
		func(h *shardHandle) device.Timed { return h.timed }}
)
