// Package services defines shared utilities consumed by the classification
// pipeline components.
//
// Key responsibilities:
//   - Context helpers that stamp per-file request identifiers for logging.
//   - Structured error markers plus the Wrap helper that separate transient
//     per-file failures from fatal setup errors.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across producers.
package services
