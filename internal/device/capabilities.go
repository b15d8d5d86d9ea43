package device

// AxisCounter reports the number of axes a backend exposes. It is the only
// capability every backend must provide.
type AxisCounter interface {
	Axes() (int, error)
}

// AxisInfo exposes per-axis identity. Name resolution relies on it.
type AxisInfo interface {
	AxisName(j int) (string, error)
	JointType(j int) (JointType, error)
}

type PositionControl interface {
	PositionMove(j int, ref float64) error
	PositionMoveMany(joints []int, refs []float64) error
	RelativeMove(j int, delta float64) error
	RelativeMoveMany(joints []int, deltas []float64) error
	CheckMotionDone(j int) (bool, error)
	SetRefSpeed(j int, sp float64) error
	SetRefSpeedsMany(joints []int, spds []float64) error
	RefSpeed(j int) (float64, error)
	RefSpeedsMany(joints []int, out []float64) error
	SetRefAcceleration(j int, acc float64) error
	SetRefAccelerationsMany(joints []int, accs []float64) error
	RefAcceleration(j int) (float64, error)
	RefAccelerationsMany(joints []int, out []float64) error
	TargetPosition(j int) (float64, error)
	TargetPositionsMany(joints []int, out []float64) error
	Stop(j int) error
	StopMany(joints []int) error
}

// PositionDirect streams position set points, bypassing trajectory generation.
type PositionDirect interface {
	SetPosition(j int, ref float64) error
	SetPositionsMany(joints []int, refs []float64) error
	RefPosition(j int) (float64, error)
	RefPositionsMany(joints []int, out []float64) error
}

type VelocityControl interface {
	VelocityMove(j int, v float64) error
	VelocityMoveMany(joints []int, vs []float64) error
	RefVelocity(j int) (float64, error)
	RefVelocitiesMany(joints []int, out []float64) error
}

// Encoders reads joint side encoders. EncoderTimed returns the reading
// together with its acquisition time.
type Encoders interface {
	Encoder(j int) (float64, error)
	EncoderTimed(j int) (float64, Stamp, error)
	EncoderSpeed(j int) (float64, error)
	EncoderAcceleration(j int) (float64, error)
	SetEncoder(j int, v float64) error
	ResetEncoder(j int) error
}

type MotorEncoders interface {
	MotorEncoder(m int) (float64, error)
	MotorEncoderSpeed(m int) (float64, error)
	SetMotorEncoder(m int, v float64) error
	ResetMotorEncoder(m int) error
	MotorEncoderCountsPerRevolution(m int) (float64, error)
	SetMotorEncoderCountsPerRevolution(m int, cpr float64) error
}

type TorqueControl interface {
	RefTorque(j int) (float64, error)
	SetRefTorque(j int, t float64) error
	SetRefTorquesMany(joints []int, ts []float64) error
	Torque(j int) (float64, error)
	TorqueRange(j int) (min, max float64, err error)
	MotorTorqueParams(j int) (MotorTorqueParameters, error)
	SetMotorTorqueParams(j int, p MotorTorqueParameters) error
}

type ImpedanceControl interface {
	Impedance(j int) (stiffness, damping float64, err error)
	SetImpedance(j int, stiffness, damping float64) error
	ImpedanceOffset(j int) (float64, error)
	SetImpedanceOffset(j int, offset float64) error
	CurrentImpedanceLimit(j int) (ImpedanceLimits, error)
}

type ControlModes interface {
	ControlMode(j int) (ControlMode, error)
	ControlModesMany(joints []int, out []ControlMode) error
	SetControlMode(j int, m ControlMode) error
	SetControlModesMany(joints []int, modes []ControlMode) error
}

type InteractionModes interface {
	InteractionMode(j int) (InteractionMode, error)
	InteractionModesMany(joints []int, out []InteractionMode) error
	SetInteractionMode(j int, m InteractionMode) error
	SetInteractionModesMany(joints []int, modes []InteractionMode) error
}

type CurrentControl interface {
	Current(m int) (float64, error)
	CurrentRange(m int) (min, max float64, err error)
	RefCurrent(m int) (float64, error)
	RefCurrentsMany(motors []int, out []float64) error
	SetRefCurrent(m int, c float64) error
	SetRefCurrentsMany(motors []int, cs []float64) error
}

type PWMControl interface {
	RefDutyCycle(m int) (float64, error)
	SetRefDutyCycle(m int, ref float64) error
	DutyCycle(m int) (float64, error)
}

type Amplifier interface {
	EnableAmp(j int) error
	DisableAmp(j int) error
	AmpStatus(j int) (int, error)
	MaxCurrent(j int) (float64, error)
	SetMaxCurrent(j int, v float64) error
	NominalCurrent(m int) (float64, error)
	SetNominalCurrent(m int, v float64) error
	PeakCurrent(m int) (float64, error)
	SetPeakCurrent(m int, v float64) error
	PWMLimit(m int) (float64, error)
	SetPWMLimit(m int, v float64) error
	PowerSupplyVoltage(m int) (float64, error)
}

type ControlLimits interface {
	Limits(j int) (min, max float64, err error)
	SetLimits(j int, min, max float64) error
	VelLimits(j int) (min, max float64, err error)
	SetVelLimits(j int, min, max float64) error
}

type PidControl interface {
	SetPid(t PidType, j int, p Pid) error
	Pid(t PidType, j int) (Pid, error)
	SetPidReference(t PidType, j int, ref float64) error
	PidReference(t PidType, j int) (float64, error)
	SetPidErrorLimit(t PidType, j int, limit float64) error
	PidErrorLimit(t PidType, j int) (float64, error)
	PidError(t PidType, j int) (float64, error)
	PidOutput(t PidType, j int) (float64, error)
	SetPidOffset(t PidType, j int, v float64) error
	ResetPid(t PidType, j int) error
	EnablePid(t PidType, j int) error
	DisablePid(t PidType, j int) error
	IsPidEnabled(t PidType, j int) (bool, error)
}

type Motor interface {
	Temperature(m int) (float64, error)
	TemperatureLimit(m int) (float64, error)
	SetTemperatureLimit(m int, v float64) error
	GearboxRatio(m int) (float64, error)
	SetGearboxRatio(m int, v float64) error
}

type ControlCalibration interface {
	CalibrateAxisWithParams(j int, kind uint, p1, p2, p3 float64) error
	SetCalibrationParameters(j int, p CalibrationParameters) error
	CalibrationDone(j int) error
	AbortCalibration() error
	AbortPark() error
}

// RemoteCalibrator drives calibration, homing and parking sequences. A
// dedicated calibrator device addresses axes by logical index; a board
// addresses them by its own local index.
type RemoteCalibrator interface {
	CalibrateSingleJoint(j int) error
	CalibrateWholePart() error
	HomingSingleJoint(j int) error
	HomingWholePart() error
	ParkSingleJoint(j int, wait bool) error
	ParkWholePart() error
	QuitCalibrate() error
	QuitPark() error
}

// RemoteVariables gives access to board specific named settings.
type RemoteVariables interface {
	RemoteVariable(key string) ([]byte, error)
	SetRemoteVariable(key string, val []byte) error
	RemoteVariablesList() ([]string, error)
}

// Timed reports when the backend last received fresh data.
type Timed interface {
	LastInputStamp() Stamp
}
