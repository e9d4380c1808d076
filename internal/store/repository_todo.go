// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// todoRepository is the SQL implementation of [TodoRepository] over the
// "todos" table. The owner is part of every WHERE clause.
type todoRepository struct {
	*DB
	logger *logger.Logger
}

func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		DB:     db,
		logger: logger,
	}
}

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var todo models.Todo
	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Description,
		&todo.DueDate,
		&todo.IsCompleted,
		&todo.CreatedAt,
		&todo.CompletedAt,
		&todo.Priority,
	)
	return todo, err
}

func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTodoQuery(r.builder, todo)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Msg("failed to build query")
		return models.Todo{}, err
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*todoRepository.CreateTodo").Str("user_id", todo.UserID.String()).Msg("error inserting todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return todo, nil
}

// GetTodos returns the owner's todos ordered by creation time. The result is
// never nil.
func (r *todoRepository) GetTodos(ctx context.Context, userID uuid.UUID, filter models.TodoFilter) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTodosQuery(r.builder, userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodos").Msg("failed to build query")
		return nil, err
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodos").Str("user_id", userID.String()).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*todoRepository.GetTodos").Msg("failed to scan todo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		todos = append(todos, todo)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodos").Msg("error iterating todo rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return todos, nil
}

func (r *todoRepository) GetTodo(ctx context.Context, userID, todoID uuid.UUID) (models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTodoQuery(r.builder, userID, todoID)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.GetTodo").Msg("failed to build query")
		return models.Todo{}, err
	}

	var todo models.Todo
	err = r.withRetry(ctx, func() error {
		var scanErr error
		todo, scanErr = scanTodo(r.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Todo{}, ErrTodoNotFound
	case err != nil:
		log.Err(err).Str("func", "*todoRepository.GetTodo").Msg("error scanning todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return todo, nil
}

func (r *todoRepository) UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	query, args, err := buildUpdateTodoQuery(r.builder, todo)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.UpdateTodo").Msg("failed to build query")
		return models.Todo{}, err
	}

	if err = r.execOwned(ctx, "*todoRepository.UpdateTodo", query, args); err != nil {
		return models.Todo{}, err
	}

	return r.GetTodo(ctx, todo.UserID, todo.ID)
}

func (r *todoRepository) CompleteTodo(ctx context.Context, userID, todoID uuid.UUID, completedAt time.Time) (models.Todo, error) {
	query, args, err := buildCompleteTodoQuery(r.builder, userID, todoID, completedAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.CompleteTodo").Msg("failed to build query")
		return models.Todo{}, err
	}

	if err = r.execOwned(ctx, "*todoRepository.CompleteTodo", query, args); err != nil {
		return models.Todo{}, err
	}

	return r.GetTodo(ctx, userID, todoID)
}

func (r *todoRepository) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	query, args, err := buildDeleteTodoQuery(r.builder, userID, todoID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoRepository.DeleteTodo").Msg("failed to build query")
		return err
	}

	return r.execOwned(ctx, "*todoRepository.DeleteTodo", query, args)
}

// execOwned runs a statement scoped by ownedTodo and reports ErrTodoNotFound
// when it touched no row.
func (r *todoRepository) execOwned(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
