package service

import "github.com/MKhiriev/go-todo-keeper/models"

// AuthFailureReason says why an authentication attempt failed. It is meant
// for logs only.
type AuthFailureReason string

const (
	ReasonUnknownEmail    AuthFailureReason = "unknown email"
	ReasonWrongPassword   AuthFailureReason = "wrong password"
	ReasonMalformedDigest AuthFailureReason = "malformed digest"
	ReasonLookupFailed    AuthFailureReason = "lookup failed"
)

// AuthResult is the outcome of [AuthService.Authenticate]: the matched user
// on success, a failure reason otherwise.
type AuthResult struct {
	User   models.User
	Reason AuthFailureReason
}

// OK reports whether authentication succeeded.
func (r AuthResult) OK() bool {
	return r.Reason == ""
}
