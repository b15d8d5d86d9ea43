// Package server serves a composite device over HTTP.
//
// Routes map one-to-one onto remapper operations. Float valued groups are
// served generically under /quantities/{name}: GET reads every axis, or the
// axes listed in ?axes=1,4; PUT takes an api.ValuesRequest. Control modes,
// remote variables, calibration, stop and relative moves have their own
// routes, and /metrics exposes the Prometheus registry.
//
// Errors are reported as api.ErrorResponse documents:
//
//	400  bad input, length mismatch, axis out of range
//	404  unknown quantity or calibration action
//	405  write to a read-only quantity
//	501  a shard lacks the capability
//	502  a backend call failed
//	503  the remapper is not attached
package server
