package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/crypto"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, hasher crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validator,
		logger:         logger,
	}
}

// GetUserByID returns the user without its digest, or ErrUserNotFound.
func (s *userService) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ChangePassword replaces the password of userID after checking the current
// one. Nothing is written unless every check passes.
func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, change models.PasswordChange) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, change); err != nil {
		return fmt.Errorf("invalid password change request: %w", err)
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(change.CurrentPassword, user.PasswordHash)
	switch {
	case errors.Is(err, crypto.ErrMalformedDigest):
		log.Error().Str("user_id", userID.String()).Msg("stored password digest is malformed")
		return fmt.Errorf("error verifying current password: %w", err)
	case err != nil, !ok:
		return ErrInvalidPassword
	}

	if change.NewPassword != change.NewPasswordConfirm {
		return ErrPasswordMismatch
	}

	digest, err := s.hasher.Hash(change.NewPassword)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidInput) {
			return ErrInvalidDataProvided
		}
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err = s.userRepository.UpdatePasswordHash(ctx, userID, digest); err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		log.Err(err).Str("user_id", userID.String()).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("user_id", userID.String()).Msg("password changed")
	return nil
}

func (s *userService) findUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("user_id", userID.String()).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}
