// Package remap composes several motor control backends into a single
// logical device with one contiguous axis index space.
//
// # Overview
//
// A Remapper is configured once, attached to a list of backends, and then
// serves every capability group of internal/device against logical axis
// indices. Each logical axis is routed to the backend (shard) that owns it
// and translated to that backend's local index.
//
//	caller axis 4 ──▶ Table[4] = (shard1, 0) ──▶ shard1.PositionMove(0, ref)
//
// # Resolution Modes
//
// Exactly one of two strategies builds the axis table:
//
//   - Name resolution: the caller lists axis names in the order it wants
//     them. Every shard is asked for the names of its axes; each requested
//     name must be reported exactly once across all shards.
//   - Range mapping: the caller lists shard keys, a total axis count, and a
//     (logicalBase, logicalTop, localBase, localTop) quadruple per key.
//     Logical axes must be covered exactly once.
//
// A backend supplied under the key "calibrator" is not part of the axis
// space. It must implement device.RemoteCalibrator and receives the
// calibration, homing and parking requests addressed to the whole device.
//
// # Batched Operations
//
// Batched operations come in two shapes, All (every axis, logical order)
// and Selected (a caller supplied axis list, any order, repeats allowed).
// The request is split into one batch per involved shard, keeping the
// caller's relative order within each shard, and results are written back
// to the caller's positions. Every involved shard is attempted even after
// another fails; the returned error joins every shard failure and is nil
// only when all shards succeeded. Writes that reached a healthy shard are
// not rolled back.
//
// # Concurrency
//
// Attach and Detach must be serialised by the owner and must not overlap
// other calls. Once attached, all operations may be called concurrently.
// Each batched shape owns its scratch buffers and a mutex that covers the
// whole split, dispatch and merge sequence.
//
// # Errors
//
// Failures carry sentinel errors that callers test with errors.Is:
// ErrNotAttached, ErrAxisOutOfRange, ErrCapabilityUnavailable,
// ErrLengthMismatch and the ErrConfig family for attach time problems.
// Per-shard and per-axis failures are wrapped in *ShardError and
// *AxisError.
package remap
