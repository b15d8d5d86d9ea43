package device

import (
	"fmt"
	"time"
)

// ControlMode selects the control law running on one axis.
type ControlMode int

const (
	ControlModeIdle ControlMode = iota
	ControlModePosition
	ControlModePositionDirect
	ControlModeVelocity
	ControlModeTorque
	ControlModeCurrent
	ControlModePWM
	ControlModeMixed
	ControlModeHardwareFault
	ControlModeCalibrating
)

var controlModeNames = map[ControlMode]string{
	ControlModeIdle:           "idle",
	ControlModePosition:       "position",
	ControlModePositionDirect: "position_direct",
	ControlModeVelocity:       "velocity",
	ControlModeTorque:         "torque",
	ControlModeCurrent:        "current",
	ControlModePWM:            "pwm",
	ControlModeMixed:          "mixed",
	ControlModeHardwareFault:  "hw_fault",
	ControlModeCalibrating:    "calibrating",
}

func (m ControlMode) String() string {
	if s, ok := controlModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("control_mode(%d)", int(m))
}

// ParseControlMode is the inverse of ControlMode.String.
func ParseControlMode(s string) (ControlMode, error) {
	for m, name := range controlModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown control mode %q", s)
}

// InteractionMode tells whether an axis yields to external forces.
type InteractionMode int

const (
	InteractionStiff InteractionMode = iota
	InteractionCompliant
	InteractionUnknown
)

func (m InteractionMode) String() string {
	switch m {
	case InteractionStiff:
		return "stiff"
	case InteractionCompliant:
		return "compliant"
	default:
		return "unknown"
	}
}

// JointType is the kinematic type of an axis.
type JointType int

const (
	JointRevolute JointType = iota
	JointPrismatic
	JointUnknown
)

// PidType selects which of the per-axis PID loops an operation addresses.
type PidType int

const (
	PidPosition PidType = iota
	PidVelocity
	PidTorque
	PidCurrent
)

// Pid holds the gains and limits of a single PID loop.
type Pid struct {
	Kp         float64 `json:"kp"`
	Ki         float64 `json:"ki"`
	Kd         float64 `json:"kd"`
	MaxInt     float64 `json:"max_int"`
	MaxOutput  float64 `json:"max_output"`
	Offset     float64 `json:"offset"`
	Scale      float64 `json:"scale"`
	StictionUp float64 `json:"stiction_up"`
	StictionDn float64 `json:"stiction_dn"`
	Kff        float64 `json:"kff"`
}

// MotorTorqueParameters describes the torque model of a motor.
type MotorTorqueParameters struct {
	Bemf        float64 `json:"bemf"`
	BemfScale   float64 `json:"bemf_scale"`
	Ktau        float64 `json:"ktau"`
	KtauScale   float64 `json:"ktau_scale"`
	ViscousPos  float64 `json:"viscous_pos"`
	ViscousNeg  float64 `json:"viscous_neg"`
	CoulombPos  float64 `json:"coulomb_pos"`
	CoulombNeg  float64 `json:"coulomb_neg"`
	VelocityThr float64 `json:"velocity_thres"`
}

// ImpedanceLimits bounds the stiffness and damping an axis accepts.
type ImpedanceLimits struct {
	MinStiffness float64 `json:"min_stiffness"`
	MaxStiffness float64 `json:"max_stiffness"`
	MinDamping   float64 `json:"min_damping"`
	MaxDamping   float64 `json:"max_damping"`
}

// CalibrationParameters carries the board specific calibration recipe.
type CalibrationParameters struct {
	Type  uint      `json:"type"`
	Param []float64 `json:"param"`
}

// Stamp identifies one acquisition. A zero Time means no stamp is available.
type Stamp struct {
	Seq  uint64    `json:"seq"`
	Time time.Time `json:"time"`
}

// IsValid reports whether the stamp carries a timestamp.
func (s Stamp) IsValid() bool { return !s.Time.IsZero() }
