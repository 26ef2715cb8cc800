// Package watcher polls clockd and reports ringing alarms and finished timers.
package watcher
