// Package utils provides general-purpose helper utilities
// used across different parts of the application:
// type-safe context keys, bearer header parsing, HTTP response writing,
// HTTP client initialization and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// TokenDataCtxKey is the key under which the authentication middleware
// stores the verified caller identity.
var TokenDataCtxKey = contextKey("tokenData")

// WithTokenData returns a copy of ctx carrying the verified caller identity.
func WithTokenData(ctx context.Context, data models.TokenData) context.Context {
	return context.WithValue(ctx, TokenDataCtxKey, data)
}

// GetTokenDataFromContext retrieves the caller identity stored by
// [WithTokenData].
//
// ok is false when the value is missing or has an unexpected type, which in
// a protected handler means the request did not pass through the
// authentication middleware.
func GetTokenDataFromContext(ctx context.Context) (models.TokenData, bool) {
	data, ok := ctx.Value(TokenDataCtxKey).(models.TokenData)
	return data, ok
}
