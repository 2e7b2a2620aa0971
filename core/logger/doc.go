// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different
// environments (development vs production) and integrates with the Fiber
// web framework used by the lookup server.
//
// # Context Awareness
//
// The WithRayID helper extracts the request's ray id from a Fiber context
// and attaches it to the log entry, so all logs related to one request can
// be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
