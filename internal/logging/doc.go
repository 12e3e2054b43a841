// Package logging builds the slog loggers used across the daemon and CLI.
//
// Two output formats are supported: a human-oriented console handler and a
// machine-oriented JSON handler. Helpers standardize attribute construction
// and the field names shared by every component, so a move always logs the
// same file/bucket keys regardless of which producer triggered it.
package logging
