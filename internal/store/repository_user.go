package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts user as is; the caller assigns UserID.
//
// Error handling:
//   - unique violation (PostgreSQL 23505, SQLite UNIQUE) → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, err
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"id": userID})
}

// findUser returns the single user matching where, retrying transient
// failures.
func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("failed to build query")
		return models.User{}, err
	}

	var user models.User
	err = r.withRetry(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(
			&user.UserID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.PasswordHash,
		)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasswordHashQuery(r.builder, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Msg("failed to build query")
		return err
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Str("user_id", userID.String()).Msg("error updating password hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
