// Package logger wraps zap for the clock daemon and its CLI:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and runtime level changes,
//   - shortcuts such as Infof and ErrorKV.
//
// Runners and services take a context and pull the logger from it, so a
// component name attached once follows every line it writes.
package logger
