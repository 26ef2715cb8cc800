// Package countdown implements the countdown timer state machine.
//
// A Countdown moves IDLE → RUNNING → (PAUSED | COMPLETED) and back to IDLE on
// Reset. Remaining time is recomputed from an anchor instant on every Tick
// instead of being decremented, so the polling interval never causes drift.
// Every method takes the current instant explicitly; the caller owns the clock.
package countdown
