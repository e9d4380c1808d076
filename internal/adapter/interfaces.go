// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the go-todo-keeper REST API.
//
// [ServerAdapter] decouples the CLI from the transport. Error values defined
// in errors.go are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized]
// for 401).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is a typed client of the go-todo-keeper server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	// Token returns the stored bearer token or an empty string.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterUserRequest) (models.UserResponse, error)
	// Login performs the password grant and stores the issued token.
	Login(ctx context.Context, email, password string) (models.AccessToken, error)

	Me(ctx context.Context) (models.UserResponse, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	CreateTodo(ctx context.Context, req models.TodoCreate) (models.Todo, error)
	// ListTodos lists the caller's todos; a nil completed lists all of them.
	ListTodos(ctx context.Context, completed *bool) ([]models.Todo, error)
	GetTodo(ctx context.Context, id uuid.UUID) (models.Todo, error)
	UpdateTodo(ctx context.Context, id uuid.UUID, req models.TodoCreate) (models.Todo, error)
	CompleteTodo(ctx context.Context, id uuid.UUID) (models.Todo, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
