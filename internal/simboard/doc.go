// Package simboard provides an in-memory motor control board that
// implements every capability group of internal/device.
//
// Boards are pass-through: references become measurements immediately, so a
// value written through one path can be read back through another. They
// serve as the backends of remapperd and as test doubles for the routing
// layer. SetFault makes a board fail every call, and Release makes it
// refuse further use, mirroring a disconnected device.
package simboard
