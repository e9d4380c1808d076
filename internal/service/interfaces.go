package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

type AuthService interface {
	// Register creates an account for a new email address.
	Register(ctx context.Context, req models.RegisterUserRequest) (models.User, error)
	// Authenticate checks an email/password pair. The result never leaves
	// the service layer with its reason.
	Authenticate(ctx context.Context, email, password string) AuthResult
	// Login authenticates the form and issues a bearer token.
	Login(ctx context.Context, form models.LoginForm) (models.AccessToken, error)
	// VerifyToken resolves a bearer token to the caller identity.
	VerifyToken(ctx context.Context, token string) (models.TokenData, error)
}

type UserService interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, change models.PasswordChange) error
}

// TodoService manages the todos of the caller identified by models.TokenData.
type TodoService interface {
	CreateTodo(ctx context.Context, td models.TokenData, req models.TodoCreate) (models.Todo, error)
	GetTodos(ctx context.Context, td models.TokenData, filter models.TodoFilter) ([]models.Todo, error)
	GetTodoByID(ctx context.Context, td models.TokenData, todoID uuid.UUID) (models.Todo, error)
	UpdateTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID, req models.TodoCreate) (models.Todo, error)
	CompleteTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID) (models.Todo, error)
	DeleteTodo(ctx context.Context, td models.TokenData, todoID uuid.UUID) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
