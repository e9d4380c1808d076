// Package tui is the interactive todo browser of the go-todo-keeper client.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// TodoService is the part of the server adapter the browser needs.
type TodoService interface {
	ListTodos(ctx context.Context, completed *bool) ([]models.Todo, error)
	CompleteTodo(ctx context.Context, id uuid.UUID) (models.Todo, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error
}

// Browse runs the browser until the user quits or ctx is cancelled.
func Browse(ctx context.Context, todos TodoService) error {
	_, err := tea.NewProgram(newBrowserModel(ctx, todos), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
