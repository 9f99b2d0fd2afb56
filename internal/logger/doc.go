// Package logger wraps zap for the console:
//   - a global sugared logger writing a console encoding to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration.
//
// Flows accept a context and extract the logger from it, so every line
// carries the command name it was produced by.
package logger
