// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's input limit; longer inputs are rejected
// instead of being silently truncated.
const maxPasswordBytes = 72

// bcryptHasher is the bcrypt implementation of [PasswordHasher].
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a [PasswordHasher] that hashes with the given bcrypt
// cost. A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher].
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if err := checkPasswordInput(plaintext); err != nil {
		return "", err
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher]. A candidate that Hash would refuse
// never matches.
func (h *bcryptHasher) Verify(plaintext, digest string) (bool, error) {
	if checkPasswordInput(plaintext) != nil {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedDigest, err)
	}
}

// NeedsRehash implements [PasswordHasher]. Unreadable digests report true.
func (h *bcryptHasher) NeedsRehash(digest string) bool {
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		return true
	}

	return cost != h.cost
}

func checkPasswordInput(plaintext string) error {
	if plaintext == "" || len(plaintext) > maxPasswordBytes {
		return ErrInvalidInput
	}

	return nil
}
