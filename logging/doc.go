// Package logging provides a minimal logging interface and adapters for the
// fact checker.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the search and verdict loops use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - SessionLogger with per-session context (session id, claim, component)
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	fc := mafc.New(gen, backend, func(o *mafc.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
