// Package common holds helpers shared by clockd and clockctl.
//
// It provides a lightweight gRPC client wrapper that applies a per-call
// timeout to every ClockService request.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
