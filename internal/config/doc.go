// Package config loads, validates and saves the YAML settings shared by
// clockd and clockctl: the gRPC address, the alarm database, runner polling
// intervals, alarm ringing behaviour, the sleep timer fade and world clock
// zones.
package config
