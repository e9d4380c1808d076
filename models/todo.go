// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency label of a todo item. Stored as text.
type Priority string

const (
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityTop    Priority = "Top"
)

// DefaultPriority is applied when a todo is created or updated without one.
const DefaultPriority = PriorityMedium

// Todo is a single task owned by exactly one user.
type Todo struct {
	// ID is the unique identifier of the todo.
	ID uuid.UUID `json:"id"`

	// UserID is the owner. Every query against todos is scoped by it.
	UserID uuid.UUID `json:"-"`

	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Priority    Priority   `json:"priority"`
}

// TableName returns the name of the database table
// associated with the Todo model.
func (t Todo) TableName() string {
	return "todos"
}

// TodoCreate is the body of POST /todos/ and PUT /todos/{id}.
type TodoCreate struct {
	Description string     `json:"description" validate:"required,max=1024"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    Priority   `json:"priority,omitempty" validate:"omitempty,oneof=Normal Low Medium High Top"`
}

// PriorityOrDefault returns the requested priority or [DefaultPriority].
func (c TodoCreate) PriorityOrDefault() Priority {
	if c.Priority == "" {
		return DefaultPriority
	}
	return c.Priority
}

// TodoFilter narrows GET /todos/. A nil Completed lists every todo.
type TodoFilter struct {
	Completed *bool
}
