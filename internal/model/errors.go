package model

import "errors"

// Error taxonomy for the classification core. Failing operations wrap one of
// these sentinels with %w so callers can branch with errors.Is.
var (
	// ErrCapabilityUnavailable means the model provider could not be
	// acquired. Fatal for the current call; a later call may retry.
	ErrCapabilityUnavailable = errors.New("model capability unavailable")

	// ErrInvalidInput marks empty or whitespace-only input text. For
	// batches the message names the offending 1-based entry.
	ErrInvalidInput = errors.New("invalid input text")

	// ErrInvalidArgument marks out-of-range top_k values and empty batch
	// sequences.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSchemaMismatch means the provider's output could not be
	// reconciled with the closed 28-label set.
	ErrSchemaMismatch = errors.New("provider output does not match the label schema")
)
