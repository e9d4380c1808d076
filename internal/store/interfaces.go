package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists credential records.
type UserRepository interface {
	// CreateUser inserts user. A duplicate email is ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns the user with exactly this email, or
	// ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns the user with this id, or ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	// UpdatePasswordHash replaces the stored digest of the user.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// TodoRepository persists todos. Every method is scoped to the owner; a todo
// of another user is reported as ErrTodoNotFound.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	GetTodos(ctx context.Context, userID uuid.UUID, filter models.TodoFilter) ([]models.Todo, error)
	GetTodo(ctx context.Context, userID, todoID uuid.UUID) (models.Todo, error)
	// UpdateTodo replaces description, due date and priority of todo.
	UpdateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	// CompleteTodo marks the todo completed at completedAt.
	CompleteTodo(ctx context.Context, userID, todoID uuid.UUID, completedAt time.Time) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error
}

// ErrorClassificator interprets driver errors of one database engine.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation(err error) bool
}
