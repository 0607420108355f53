// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, and code,
//     which can be mapped to HTTP status codes at the edge (handlers).
//
// The plotting pipeline leans on the Code values: every stage fails with the
// most specific code it can (malformed input, unknown column, type mismatch,
// and so on) and never retries or silently coerces.
package pkgerror
