// Package testutil contains helper stubs used across tests to reduce
// boilerplate when simulating search backends and asserting loop behavior.
// These helpers are intentionally minimal and avoid adding third-party
// dependencies. They are not intended for production usage.
package testutil
