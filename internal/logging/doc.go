// Package logging provides a simple leveled logging interface for the
// gif-shrink compression engine.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information (per-candidate sizes, cleanup)
//   - INFO: General operational messages (search progress)
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//
// The log level is configured via the LOG_LEVEL environment variable, or
// DEBUG=true as a shortcut for debug level.
//
// Search workers use Worker to obtain a logger that prefixes every message
// with the worker's number, so interleaved progress lines from concurrent
// strategies stay attributable.
package logging
