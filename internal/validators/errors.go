package validators

import "errors"

var (
	// ErrValidation is wrapped by every error describing invalid input.
	ErrValidation = errors.New("validation failed")
	// ErrUnsupportedType is returned for values that are not structs or
	// pointers to structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")
)
