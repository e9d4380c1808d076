package tui

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

type todosLoadedMsg struct {
	todos []models.Todo
	err   error
}

type todoCompletedMsg struct {
	todo models.Todo
	err  error
}

type todoDeletedMsg struct {
	id  uuid.UUID
	err error
}

type copiedMsg struct {
	err error
}
