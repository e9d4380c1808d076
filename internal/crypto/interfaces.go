package crypto

import (
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing one-way
// digests and checks candidates against them.
//
// Implementations are pure: no I/O and safe for concurrent use.
type PasswordHasher interface {
	// Hash returns a digest of plaintext with a fresh random salt, so two
	// calls with the same input produce different digests.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. A mismatch is
	// (false, nil); an unrecognizable digest is ErrMalformedDigest.
	Verify(plaintext, digest string) (bool, error)

	// NeedsRehash reports whether digest was produced with parameters other
	// than the hasher's current ones.
	NeedsRehash(digest string) bool
}

// TokenCodec issues and verifies signed, time-bounded bearer tokens.
type TokenCodec interface {
	// Issue signs a token for subjectID that expires ttl from now.
	Issue(subjectID uuid.UUID, ttl time.Duration) (models.Token, error)

	// Verify checks signature, issuer and expiry of token and returns the
	// subject it was issued for.
	Verify(token string) (uuid.UUID, error)
}
