package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// dummyPassword is hashed once to get a digest for timing-equalizing
// comparisons on unknown emails.
const dummyPassword = "go-todo-keeper-dummy-password"

// fallbackDummyDigest is a valid bcrypt digest (cost 10) used when hashing
// dummyPassword fails.
const fallbackDummyDigest = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3AZGvXyMq2wG3FbU4mvmBcC"

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and bearer token
// lifecycle using a UserRepository for persistence, a PasswordHasher for
// digests and a TokenCodec for tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher    crypto.PasswordHasher
	codec     crypto.TokenCodec
	validator validators.Validator
	ids       *utils.UUIDGenerator

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	dummyOnce   sync.Once
	dummyDigest string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and crypto primitives.
//
// The returned service is safe for concurrent use; all state except the
// lazily computed dummy digest is read-only after construction.
func NewAuthService(
	userRepository store.UserRepository,
	hasher crypto.PasswordHasher,
	codec crypto.TokenCodec,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		codec:          codec,
		validator:      validator,
		ids:            utils.NewUUIDGenerator(),
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Returns the persisted user without its digest or:
//   - a validation error (wrapping validators.ErrValidation) for a bad request.
//   - ErrEmailAlreadyExists if the email is taken, including a concurrent
//     registration that loses the unique constraint race.
//   - ErrInvalidDataProvided if the password cannot be hashed (over 72 bytes).
func (a *authService) Register(ctx context.Context, req models.RegisterUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid registration request")
		return models.User{}, fmt.Errorf("invalid registration request: %w", err)
	}

	_, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return models.User{}, ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidInput) {
			return models.User{}, ErrInvalidDataProvided
		}
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.ids.Generate(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: digest,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("user registered")
	user.PasswordHash = ""
	return user, nil
}

// Authenticate implements [AuthService]. An unknown email still costs one
// bcrypt comparison.
func (a *authService) Authenticate(ctx context.Context, email, password string) AuthResult {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		_, _ = a.hasher.Verify(password, a.getDummyDigest())
		return AuthResult{Reason: ReasonUnknownEmail}
	case err != nil:
		log.Err(err).Msg("user search by email failed")
		return AuthResult{Reason: ReasonLookupFailed}
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	switch {
	case errors.Is(err, crypto.ErrMalformedDigest):
		log.Error().Str("user_id", user.UserID.String()).Msg("stored password digest is malformed")
		return AuthResult{Reason: ReasonMalformedDigest}
	case err != nil, !ok:
		return AuthResult{Reason: ReasonWrongPassword}
	}

	return AuthResult{User: user}
}

// Login authenticates form and issues a bearer token valid for the
// configured duration. A digest produced with outdated parameters is
// replaced; failing to store it does not fail the login.
func (a *authService) Login(ctx context.Context, form models.LoginForm) (models.AccessToken, error) {
	log := logger.FromContext(ctx)

	if form.GrantType != "" && form.GrantType != models.GrantTypePassword {
		return models.AccessToken{}, ErrInvalidDataProvided
	}
	if err := a.validator.Validate(ctx, form); err != nil {
		return models.AccessToken{}, fmt.Errorf("invalid login form: %w", err)
	}

	result := a.Authenticate(ctx, form.Username, form.Password)
	if !result.OK() {
		log.Info().Str("reason", string(result.Reason)).Msg("authentication failed")
		return models.AccessToken{}, ErrAuthentication
	}
	user := result.User

	if a.hasher.NeedsRehash(user.PasswordHash) {
		a.rehash(ctx, user, form.Password)
	}

	token, err := a.codec.Issue(user.UserID, a.tokenDuration)
	if err != nil {
		log.Err(err).Str("user_id", user.UserID.String()).Msg("token creation failed")
		return models.AccessToken{}, fmt.Errorf("token creation failed: %w", err)
	}

	return models.AccessToken{
		AccessToken: token.SignedString,
		TokenType:   models.TokenTypeBearer,
	}, nil
}

// VerifyToken implements [AuthService]. Every codec failure, expiry
// included, is reported as ErrAuthentication.
func (a *authService) VerifyToken(ctx context.Context, token string) (models.TokenData, error) {
	userID, err := a.codec.Verify(token)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token verification failed")
		return models.TokenData{}, ErrAuthentication
	}

	return models.TokenData{UserID: userID}, nil
}

func (a *authService) rehash(ctx context.Context, user models.User, password string) {
	log := logger.FromContext(ctx).With().Str("user_id", user.UserID.String()).Logger()

	digest, err := a.hasher.Hash(password)
	if err != nil {
		log.Warn().Err(err).Msg("password rehash failed")
		return
	}
	if err = a.userRepository.UpdatePasswordHash(ctx, user.UserID, digest); err != nil {
		log.Warn().Err(err).Msg("storing rehashed password failed")
		return
	}

	log.Info().Msg("password digest upgraded")
}

func (a *authService) getDummyDigest() string {
	a.dummyOnce.Do(func() {
		digest, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Warn().Err(err).Msg("dummy digest generation failed")
			digest = fallbackDummyDigest
		}
		a.dummyDigest = digest
	})

	return a.dummyDigest
}
