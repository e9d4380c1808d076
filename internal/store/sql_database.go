package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/migrations"
)

const (
	sqliteDSNPrefix = "sqlite:"

	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// DB is a database connection together with the dialect-specific pieces
// repositories need: a placeholder-aware query builder and an error
// classifier.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.DSN: a "sqlite:" prefix
// selects SQLite, "postgres://" and "postgresql://" select PostgreSQL.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, sqliteDSNPrefix):
		return NewConnectSQLite(ctx, strings.TrimPrefix(cfg.DSN, sqliteDSNPrefix), log)
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg.DSN, log)
	default:
		return nil, ErrUnsupportedDSN
	}
}

// Migrate applies every pending migration of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// withRetry runs op until it succeeds, fails with an error the classifier
// does not consider retryable, ctx is done, or maxAttempts is reached.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil || db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retryable database error")
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", err, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	return err
}
