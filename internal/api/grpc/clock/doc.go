// Package clock implements the gRPC transport for the clock daemon.
//
// It validates requests, converts wire messages to domain types and back,
// and maps domain errors to gRPC status codes before calling into the
// business services.
package clock
