package crypto

import "errors"

var (
	// ErrInvalidInput is returned by Hash for an empty password or one
	// longer than bcrypt's 72-byte limit.
	ErrInvalidInput = errors.New("invalid password input")
	// ErrMalformedDigest is returned when a stored digest is not a
	// recognizable bcrypt hash.
	ErrMalformedDigest = errors.New("malformed password digest")

	// ErrInvalidTTL is returned by Issue for a non-positive lifetime.
	ErrInvalidTTL = errors.New("token lifetime must be positive")
	// ErrTokenExpired is returned by Verify when now is not before exp.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures, unexpected algorithms, a wrong
	// issuer, malformed payloads and missing or non-UUID subjects.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrEmptySignKey is returned when a codec is constructed without a key.
	ErrEmptySignKey = errors.New("token sign key is empty")
)
