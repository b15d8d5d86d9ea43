// Package device declares the capability groups a motor control backend may
// expose, and the value types exchanged through them.
//
// # Overview
//
// A backend is any Go value. What it can do is discovered by asserting it
// against the interfaces in this package: a board that satisfies
// PositionControl can be position-driven, one that satisfies TorqueControl
// can be torque-driven, and so on. No backend is required to implement more
// than AxisCounter; everything else is optional and is reported as
// unavailable by the routing layer when missing.
//
// # Indexing
//
// Every axis argument is a local index, meaningful only inside the backend
// that receives it. The "Many" forms take an explicit list of local indices
// and a value slice of the same length; implementations read values from (or
// write results into) position i of the slice for joints[i].
//
// # Errors
//
// Methods return a non-nil error when the backend refused or failed the
// request. The routing layer never inspects these errors beyond aggregating
// them, so backends are free to wrap transport errors as they see fit.
//
// # See Also
//
//   - internal/remap: composes many backends into one logical device
//   - internal/simboard: in-memory backend implementing every group
package device
