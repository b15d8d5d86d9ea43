package remap

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/dreamware/axisremap/internal/device"
)

// Backend is one device handed to Attach. Key identifies it in range
// mapping mode and in diagnostics; a key of "calibrator" (any case) marks
// the device as the calibrator rather than a source of axes.
type Backend struct {
	Key    string
	Device any
}

// Releaser is implemented by backends that want to know when the remapper
// stops using them.
type Releaser interface {
	Release() error
}

// State is the attach lifecycle of a Remapper.
type State int

const (
	StateUnattached State = iota
	StateAttaching
	StateAttached
	StateDetached
)

func (s State) String() string {
	switch s {
	case StateUnattached:
		return "unattached"
	case StateAttaching:
		return "attaching"
	case StateAttached:
		return "attached"
	case StateDetached:
		return "detached"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func isCalibratorKey(key string) bool {
	return strings.EqualFold(key, "calibrator")
}

// shardHandle is an attached backend together with the capability views it
// exposed when it was probed. A nil view means the capability is
// unavailable on this shard.
type shardHandle struct {
	device any
	key    string
	id     int
	axes   int

	info        device.AxisInfo
	pos         device.PositionControl
	posDir      device.PositionDirect
	vel         device.VelocityControl
	enc         device.Encoders
	motEnc      device.MotorEncoders
	torque      device.TorqueControl
	impedance   device.ImpedanceControl
	mode        device.ControlModes
	interaction device.InteractionModes
	current     device.CurrentControl
	pwm         device.PWMControl
	amp         device.Amplifier
	limits      device.ControlLimits
	pid         device.PidControl
	motor       device.Motor
	calib       device.ControlCalibration
	remCalib    device.RemoteCalibrator
	vars        device.RemoteVariables
	timed       device.Timed
}

// probe caches every capability view the device exposes. It is called once
// per attach; dispatch never re-probes.
func (h *shardHandle) probe() {
	d := h.device
	h.info, _ = d.(device.AxisInfo)
	h.pos, _ = d.(device.PositionControl)
	h.posDir, _ = d.(device.PositionDirect)
	h.vel, _ = d.(device.VelocityControl)
	h.enc, _ = d.(device.Encoders)
	h.motEnc, _ = d.(device.MotorEncoders)
	h.torque, _ = d.(device.TorqueControl)
	h.impedance, _ = d.(device.ImpedanceControl)
	h.mode, _ = d.(device.ControlModes)
	h.interaction, _ = d.(device.InteractionModes)
	h.current, _ = d.(device.CurrentControl)
	h.pwm, _ = d.(device.PWMControl)
	h.amp, _ = d.(device.Amplifier)
	h.limits, _ = d.(device.ControlLimits)
	h.pid, _ = d.(device.PidControl)
	h.motor, _ = d.(device.Motor)
	h.calib, _ = d.(device.ControlCalibration)
	h.remCalib, _ = d.(device.RemoteCalibrator)
	h.vars, _ = d.(device.RemoteVariables)
	h.timed, _ = d.(device.Timed)
}

// capabilities lists the names of the views present on the shard, in a
// fixed order.
func (h *shardHandle) capabilities() (present, missing []string) {
	views := []struct {
		name string
		ok   bool
	}{
		{capAxisInfo.name, h.info != nil},
		{capPosition.name, h.pos != nil},
		{capPositionDirect.name, h.posDir != nil},
		{capVelocity.name, h.vel != nil},
		{capEncoders.name, h.enc != nil},
		{capMotorEncoders.name, h.motEnc != nil},
		{capTorque.name, h.torque != nil},
		{capImpedance.name, h.impedance != nil},
		{capControlMode.name, h.mode != nil},
		{capInteraction.name, h.interaction != nil},
		{capCurrent.name, h.current != nil},
		{capPWM.name, h.pwm != nil},
		{capAmplifier.name, h.amp != nil},
		{capLimits.name, h.limits != nil},
		{capPid.name, h.pid != nil},
		{capMotor.name, h.motor != nil},
		{capCalibration.name, h.calib != nil},
		{capRemoteCalibrator.name, h.remCalib != nil},
		{capRemoteVariables.name, h.vars != nil},
		{capTimed.name, h.timed != nil},
	}
	for _, v := range views {
		if v.ok {
			present = append(present, v.name)
		} else {
			missing = append(missing, v.name)
		}
	}
	return present, missing
}

// release drops every view. The device itself is notified when it
// implements Releaser.
func (h *shardHandle) release() error {
	d := h.device
	*h = shardHandle{id: h.id, key: h.key}
	if r, ok := d.(Releaser); ok {
		return r.Release()
	}
	return nil
}

// ShardInfo is a read-only description of an attached shard.
type ShardInfo struct {
	Key          string   `json:"key"`
	Capabilities []string `json:"capabilities"`
	ID           int      `json:"id"`
	Axes         int      `json:"axes"`
}

// shardRegistry owns the attached shards and the optional calibrator.
//
// Shards are addressed by their position in the registry (their ShardID),
// never by pointer, so a stale AxisLocation can only ever produce a bounds
// error rather than a dangling reference.
//
// Lifecycle:
//
//	newShardRegistry → add (one per backend) → [resolution] → releaseAll
//
// Concurrency Model:
//   - Built single-threaded during Attach
//   - Read-only afterwards; lookups take no lock
//   - releaseAll must not race with dispatch; the owner serialises it
type shardRegistry struct {
	logger     *zap.Logger
	shards     []*shardHandle
	calibrator device.RemoteCalibrator
	calibKey   string
	verbose    bool
}

func newShardRegistry(logger *zap.Logger, verbose bool) *shardRegistry {
	return &shardRegistry{logger: logger, verbose: verbose}
}

// setCalibrator records the dedicated calibrator device.
//
// The calibrator takes no part in the axis space. It must expose
// device.RemoteCalibrator; anything else is an attach error.
func (r *shardRegistry) setCalibrator(b Backend) error {
	if b.Device == nil {
		return fmt.Errorf("%w: calibrator %q", ErrNilBackend, b.Key)
	}
	if r.calibrator != nil {
		return fmt.Errorf("%w: second calibrator %q", ErrUnexpectedBackend, b.Key)
	}
	c, ok := b.Device.(device.RemoteCalibrator)
	if !ok {
		return fmt.Errorf("%w: %q", ErrCalibratorUnavailable, b.Key)
	}
	r.calibrator = c
	r.calibKey = b.Key
	r.logger.Info("calibrator attached", zap.String("key", b.Key))
	return nil
}

// add probes a backend and appends it as the next shard.
//
// Validation:
//   - Device must be non-nil
//   - Device must implement device.AxisCounter and report at least one axis
//
// Optional views that are missing are recorded as unavailable and, in
// verbose mode, logged once here.
//
// Returns:
//   - The new shard handle on success
//   - ErrNilBackend or a descriptive error otherwise
func (r *shardRegistry) add(b Backend) (*shardHandle, error) {
	if b.Device == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilBackend, b.Key)
	}
	counter, ok := b.Device.(device.AxisCounter)
	if !ok {
		return nil, fmt.Errorf("backend %q does not report its axis count", b.Key)
	}
	axes, err := counter.Axes()
	if err != nil {
		return nil, fmt.Errorf("backend %q: axis count: %w", b.Key, err)
	}
	if axes <= 0 {
		return nil, fmt.Errorf("backend %q reports an invalid number of axes (%d)", b.Key, axes)
	}

	h := &shardHandle{id: len(r.shards), key: b.Key, device: b.Device, axes: axes}
	h.probe()
	r.shards = append(r.shards, h)

	if r.verbose {
		_, missing := h.capabilities()
		for _, name := range missing {
			r.logger.Warn("capability not available on shard",
				zap.String("key", h.key), zap.Int("shard", h.id), zap.String("capability", name))
		}
	}
	return h, nil
}

// get returns the shard with the given id, or false when the id is out of
// range or the shard has been released.
func (r *shardRegistry) get(id int) (*shardHandle, bool) {
	if id < 0 || id >= len(r.shards) {
		return nil, false
	}
	h := r.shards[id]
	if h.device == nil {
		return nil, false
	}
	return h, true
}

func (r *shardRegistry) len() int { return len(r.shards) }

func (r *shardRegistry) axisCounts() []int {
	counts := make([]int, len(r.shards))
	for i, h := range r.shards {
		counts[i] = h.axes
	}
	return counts
}

// infos returns a copy of every shard description, in ShardID order.
func (r *shardRegistry) infos() []ShardInfo {
	out := make([]ShardInfo, 0, len(r.shards))
	for _, h := range r.shards {
		present, _ := h.capabilities()
		out = append(out, ShardInfo{ID: h.id, Key: h.key, Axes: h.axes, Capabilities: present})
	}
	return out
}

// releaseAll detaches every shard and forgets the calibrator.
//
// Release is best-effort: a failing shard is logged and the remaining
// shards are still released. Calling it on an empty registry is a no-op.
func (r *shardRegistry) releaseAll() {
	for _, h := range r.shards {
		if err := h.release(); err != nil {
			r.logger.Warn("shard release failed", zap.Int("shard", h.id), zap.String("key", h.key), zap.Error(err))
		}
	}
	r.shards = nil
	if r.calibrator != nil {
		r.logger.Info("calibrator released", zap.String("key", r.calibKey))
	}
	r.calibrator = nil
	r.calibKey = ""
}

// sameDevice reports whether two shards wrap the same backend value.
func sameDevice(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
