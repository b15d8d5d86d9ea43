// Package health watches the shards behind a composite device.
//
// A Monitor runs a probe function on a fixed interval. The probe returns
// one result per shard key; the monitor turns those results into records
// that move between three states:
//
//	unknown ──ok──► healthy ◄──ok── unhealthy
//	   │               │                ▲
//	   └──fail×N───────┴────fail×N──────┘
//
// N is the consecutive-failure threshold (3 by default). A shard that
// recovers becomes healthy on its first successful probe. Shards absent
// from a probe result are forgotten, and a probe that fails outright (the
// device was detached) clears every record.
//
// The monitor never acts on a shard itself. Callers that want to react to
// a failure register WithOnUnhealthy.
package health
