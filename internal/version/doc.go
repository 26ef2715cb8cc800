// Package version exposes build metadata for clockd and clockctl.
//
// Version, Commit and BuildTime are injected with -ldflags at build time.
package version
