// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// TokenConfig is the immutable signing configuration of a [TokenCodec].
type TokenConfig struct {
	// SignKey is the HMAC secret. Must not be empty.
	SignKey string
	// Issuer is written to and required in the "iss" claim.
	Issuer string
}

// jwtCodec is the HS256 implementation of [TokenCodec].
type jwtCodec struct {
	signKey []byte
	issuer  string
	now     func() time.Time
}

// CodecOption customizes a codec built by [NewTokenCodec].
type CodecOption func(*jwtCodec)

// WithClock replaces the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *jwtCodec) {
		c.now = now
	}
}

// NewTokenCodec builds an HS256 [TokenCodec]. The config is copied; later
// changes to cfg do not affect the codec.
func NewTokenCodec(cfg TokenConfig, opts ...CodecOption) (TokenCodec, error) {
	if cfg.SignKey == "" {
		return nil, ErrEmptySignKey
	}

	c := &jwtCodec{
		signKey: []byte(cfg.SignKey),
		issuer:  cfg.Issuer,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Issue implements [TokenCodec].
func (c *jwtCodec) Issue(subjectID uuid.UUID, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		return models.Token{}, ErrInvalidTTL
	}
	if subjectID == uuid.Nil {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrTokenInvalid)
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subjectID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt(now, ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		RegisteredClaims: claims,
		SignedString:     signed,
		UserID:           subjectID,
	}, nil
}

// expiresAt rounds now+ttl up to a whole second, the resolution of "exp",
// so a token never expires before its ttl has elapsed.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if t := exp.Truncate(time.Second); !t.Equal(exp) {
		return t.Add(time.Second)
	}
	return exp
}

// Verify implements [TokenCodec]. A token is valid only while now < exp.
func (c *jwtCodec) Verify(token string) (uuid.UUID, error) {
	parsed := &models.Token{}
	_, err := jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return c.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	userID, err := parsed.GetUserID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return userID, nil
}
