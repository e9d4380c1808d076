package ratelimit

import "errors"

var (
	// ErrInvalidRule is returned for a rule with a non-positive quota or window.
	ErrInvalidRule = errors.New("invalid rate limit rule")
	// ErrBackend wraps failures of the counting store.
	ErrBackend = errors.New("rate limit backend failure")
	// ErrUnexpectedReply is returned when the redis script answers with a
	// shape the limiter does not understand.
	ErrUnexpectedReply = errors.New("unexpected rate limit script reply")
)
