// Package client implements the clockctl operations.
//
// A Session connects to clockd, issues one ClockService call per operation
// and renders the result as plain text for the terminal.
package client
