package service

import "errors"

// Sentinel errors handlers map onto HTTP responses with errors.Is.
var (
	// ErrValidation covers malformed input; nothing is persisted.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound covers unknown learners and lessons; nothing is persisted.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamTimeout covers speech-to-text failures. The attempt is
	// retryable and no score is recorded for it.
	ErrUpstreamTimeout = errors.New("upstream transcription timed out")
)
