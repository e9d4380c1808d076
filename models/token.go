// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"

// GrantTypePassword is the only OAuth2 grant type accepted by POST /auth/token.
const GrantTypePassword = "password"

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.RegisteredClaims] for standard claim access (subject, expiry,
// issuer) and keeps the compact serialized form in SignedString.
//
// UserID is a parsed copy of the "sub" (subject) claim; it is populated by the
// token codec on issue and on successful verification.
type Token struct {
	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the subject extracted from the "sub" claim.
	UserID uuid.UUID `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a UUID.
//
// Returns an error if the subject claim is missing or is not a UUID.
func (t *Token) GetUserID() (uuid.UUID, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting UserID from token to uuid: %w", err)
	}

	if userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("nil UserID in token subject")
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenData is the verified identity carried by a bearer token. It is the
// request-scoped authenticated identity handed to resource services.
type TokenData struct {
	UserID uuid.UUID
}

// LoginForm is the OAuth2 password-grant form of POST /auth/token.
type LoginForm struct {
	Username  string `validate:"required"`
	Password  string `validate:"required"`
	GrantType string
}

// AccessToken is the response body of a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
