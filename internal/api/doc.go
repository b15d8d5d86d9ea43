// Package api defines the JSON documents exchanged with remapperd and the
// small HTTP helpers its clients use to send them.
//
// Every request and response body is a plain struct with json tags. Batched
// requests follow the remapper's conventions: an empty axis list addresses
// every axis in logical order, otherwise values line up with the listed
// axes. Failed requests carry an ErrorResponse, which the helpers surface
// as a *StatusError.
package api
