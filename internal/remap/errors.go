package remap

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig wraps every configuration problem detected before or during
	// resolution.
	ErrConfig = errors.New("invalid remapper configuration")

	ErrDuplicateAxisName = errors.New("duplicate axis name")
	ErrAxisNotFound      = errors.New("axis not found")
	ErrRangeLength       = errors.New("logical and local ranges differ in length")
	ErrRangeOverlap      = errors.New("overlapping axis ranges")

	ErrNoBackends            = errors.New("no backends to attach")
	ErrNilBackend            = errors.New("nil backend")
	ErrUnexpectedBackend     = errors.New("unexpected backend")
	ErrMissingBackend        = errors.New("configured backend not supplied")
	ErrCalibratorUnavailable = errors.New("calibrator does not expose remote calibration")
	ErrAlreadyAttached       = errors.New("remapper already attached")

	// ErrNotAttached is returned by every operation issued before a
	// successful Attach or after Detach.
	ErrNotAttached           = errors.New("remapper not attached")
	ErrAxisOutOfRange        = errors.New("axis index out of range")
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrLengthMismatch        = errors.New("buffer length mismatch")
)

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// ShardError reports a failure of a single backend inside a batched or
// per-shard operation.
type ShardError struct {
	Shard int
	Key   string
	Err   error
}

func (e *ShardError) Error() string {
	return fmt.Sprintf("shard %d (%s): %v", e.Shard, e.Key, e.Err)
}

func (e *ShardError) Unwrap() error { return e.Err }

// AxisError reports a failure routed through one logical axis.
type AxisError struct {
	Axis int
	Err  error
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("axis %d: %v", e.Axis, e.Err)
}

func (e *AxisError) Unwrap() error { return e.Err }
