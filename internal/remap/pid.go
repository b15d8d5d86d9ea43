package remap

import "github.com/dreamware/axisremap/internal/device"

// pidGet and pidSet bind a PID loop type to a per-axis accessor.
func pidGet[T any](t device.PidType, call func(device.PidControl, device.PidType, int) (T, error)) func(device.PidControl, int) (T, error) {
	return func(p device.PidControl, local int) (T, error) { return call(p, t, local) }
}

func pidSet[T any](t device.PidType, call func(device.PidControl, device.PidType, int, T) error) func(device.PidControl, int, T) error {
	return func(p device.PidControl, local int, v T) error { return call(p, t, local, v) }
}

func pidCommand(t device.PidType, call func(device.PidControl, device.PidType, int) error) func(device.PidControl, int) error {
	return func(p device.PidControl, local int) error { return call(p, t, local) }
}

func (r *Remapper) SetPid(t device.PidType, j int, p device.Pid) error {
	return set(r, j, capPid, pidSet(t, device.PidControl.SetPid), p)
}

func (r *Remapper) SetPidAll(t device.PidType, ps []device.Pid) error {
	return commandEach(r, everyAxis, capPid, pidSet(t, device.PidControl.SetPid), ps)
}

func (r *Remapper) Pid(t device.PidType, j int) (device.Pid, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.Pid))
}

func (r *Remapper) PidAll(t device.PidType, out []device.Pid) error {
	return queryEach(r, everyAxis, capPid, pidGet(t, device.PidControl.Pid), out)
}

func (r *Remapper) SetPidReference(t device.PidType, j int, ref float64) error {
	return set(r, j, capPid, pidSet(t, device.PidControl.SetPidReference), ref)
}

func (r *Remapper) SetPidReferenceAll(t device.PidType, refs []float64) error {
	return commandEach(r, everyAxis, capPid, pidSet(t, device.PidControl.SetPidReference), refs)
}

func (r *Remapper) PidReference(t device.PidType, j int) (float64, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.PidReference))
}

func (r *Remapper) PidReferenceAll(t device.PidType, out []float64) error {
	return queryEach(r, everyAxis, capPid, pidGet(t, device.PidControl.PidReference), out)
}

func (r *Remapper) SetPidErrorLimit(t device.PidType, j int, limit float64) error {
	return set(r, j, capPid, pidSet(t, device.PidControl.SetPidErrorLimit), limit)
}

func (r *Remapper) SetPidErrorLimitAll(t device.PidType, limits []float64) error {
	return commandEach(r, everyAxis, capPid, pidSet(t, device.PidControl.SetPidErrorLimit), limits)
}

func (r *Remapper) PidErrorLimit(t device.PidType, j int) (float64, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.PidErrorLimit))
}

func (r *Remapper) PidErrorLimitAll(t device.PidType, out []float64) error {
	return queryEach(r, everyAxis, capPid, pidGet(t, device.PidControl.PidErrorLimit), out)
}

// PidError returns the current tracking error of the loop on axis j.
func (r *Remapper) PidError(t device.PidType, j int) (float64, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.PidError))
}

func (r *Remapper) PidErrorAll(t device.PidType, out []float64) error {
	return queryEach(r, everyAxis, capPid, pidGet(t, device.PidControl.PidError), out)
}

func (r *Remapper) PidOutput(t device.PidType, j int) (float64, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.PidOutput))
}

func (r *Remapper) PidOutputAll(t device.PidType, out []float64) error {
	return queryEach(r, everyAxis, capPid, pidGet(t, device.PidControl.PidOutput), out)
}

func (r *Remapper) SetPidOffset(t device.PidType, j int, v float64) error {
	return set(r, j, capPid, pidSet(t, device.PidControl.SetPidOffset), v)
}

func (r *Remapper) ResetPid(t device.PidType, j int) error {
	return on(r, j, capPid, pidCommand(t, device.PidControl.ResetPid))
}

func (r *Remapper) EnablePid(t device.PidType, j int) error {
	return on(r, j, capPid, pidCommand(t, device.PidControl.EnablePid))
}

func (r *Remapper) DisablePid(t device.PidType, j int) error {
	return on(r, j, capPid, pidCommand(t, device.PidControl.DisablePid))
}

func (r *Remapper) IsPidEnabled(t device.PidType, j int) (bool, error) {
	return query(r, j, capPid, pidGet(t, device.PidControl.IsPidEnabled))
}
