// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// todoService implements TodoService. The caller's UserID from
// models.TokenData is passed down to every repository call, so a todo of
// another user behaves exactly like a missing one.
type todoService struct {
	todoRepository store.TodoRepository
	validator      validators.Validator
	ids            *utils.UUIDGenerator
	now            func() time.Time

	logger *logger.Logger
}

func NewTodoService(todoRepository store.TodoRepository, validator validators.Validator, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		validator:      validator,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *todoService) CreateTodo(ctx context.Context, td models.TokenData, req models.TodoCreate) (models.Todo, error) {
	if err := s.checkRequest(ctx, td, req); err != nil {
		return models.Todo{}, err
	}

	todo, err := s.todoRepository.CreateTodo(ctx, models.Todo{
		ID:          s.ids.Generate(),
		UserID:      td.UserID,
		Description: req.Description,
		DueDate:     inUTC(req.DueDate),
		CreatedAt:   s.now().UTC(),
		Priority:    req.PriorityOrDefault(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", td.UserID.String()).Msg("todo creation failed")
		return models.Todo{}, fmt.Errorf("todo creation failed: %w", err)
	}

	return todo, nil
}

// GetTodos returns the caller's todos ordered by creation time.
func (s *todoService) GetTodos(ctx context.Context, td models.TokenData, filter models.TodoFilter) ([]models.Todo, error) {
	if td.UserID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	todos, err := s.todoRepository.GetTodos(ctx, td.UserID, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", td.UserID.String()).Msg("todo listing failed")
		return nil, fmt.Errorf("todo listing failed: %w", err)
	}

	return todos, nil
}

func (s *todoService) GetTodoByID(ctx context.Context, td models.TokenData, todoID uuid.UUID) (models.Todo, error) {
	if td.UserID == uuid.Nil {
		return models.Todo{}, ErrNotAuthenticated
	}

	todo, err := s.todoRepository.GetTodo(ctx, td.UserID, todoID)
	return todo, s.mapError(ctx, err, "todo lookup failed")
}

// UpdateTodo replaces description, due date and priority. A missing
// priority resets it to the default.
func (s *todoService) UpdateTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID, req models.TodoCreate) (models.Todo, error) {
	if err := s.checkRequest(ctx, td, req); err != nil {
		return models.Todo{}, err
	}

	todo, err := s.todoRepository.UpdateTodo(ctx, models.Todo{
		ID:          todoID,
		UserID:      td.UserID,
		Description: req.Description,
		DueDate:     inUTC(req.DueDate),
		Priority:    req.PriorityOrDefault(),
	})
	return todo, s.mapError(ctx, err, "todo update failed")
}

// CompleteTodo marks the todo completed. An already completed todo is
// returned unchanged.
func (s *todoService) CompleteTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID) (models.Todo, error) {
	todo, err := s.GetTodoByID(ctx, td, todoID)
	if err != nil {
		return models.Todo{}, err
	}
	if todo.IsCompleted {
		return todo, nil
	}

	todo, err = s.todoRepository.CompleteTodo(ctx, td.UserID, todoID, s.now().UTC())
	return todo, s.mapError(ctx, err, "todo completion failed")
}

func (s *todoService) DeleteTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID) error {
	if td.UserID == uuid.Nil {
		return ErrNotAuthenticated
	}

	return s.mapError(ctx, s.todoRepository.DeleteTodo(ctx, td.UserID, todoID), "todo deletion failed")
}

func (s *todoService) checkRequest(ctx context.Context, td models.TokenData, req models.TodoCreate) error {
	if td.UserID == uuid.Nil {
		return ErrNotAuthenticated
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("invalid todo: %w", err)
	}

	return nil
}

func (s *todoService) mapError(ctx context.Context, err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrTodoNotFound):
		return ErrTodoNotFound
	default:
		logger.FromContext(ctx).Err(err).Msg(msg)
		return fmt.Errorf("%s: %w", msg, err)
	}
}

func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
