// Package alarms persists alarms and a few remembered settings in SQLite.
//
// The Store opens (or creates) the database, applies migrations tracked by
// PRAGMA user_version, and implements the Repository and Settings
// interfaces the alarm service depends on.
package alarms
