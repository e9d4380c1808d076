// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// todoRequest resolves the caller identity and, when withID is set, the
// {id} path parameter of a todo route.
func todoRequest(r *http.Request, withID bool) (models.TokenData, uuid.UUID, error) {
	tokenData, ok := utils.GetTokenDataFromContext(r.Context())
	if !ok {
		return models.TokenData{}, uuid.Nil, service.ErrNotAuthenticated
	}
	if !withID {
		return tokenData, uuid.Nil, nil
	}

	rawID := chi.URLParam(r, "id")
	todoID, err := uuid.Parse(rawID)
	if err != nil {
		return models.TokenData{}, uuid.Nil, fmt.Errorf("%w %q: %w", errInvalidTodoID, rawID, err)
	}
	return tokenData, todoID, nil
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	tokenData, _, err := todoRequest(r, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.TodoCreate
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.CreateTodo(r.Context(), tokenData, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, todo, http.StatusCreated)
}

// getTodos lists the caller's todos. The optional "completed" query
// parameter accepts any value understood by strconv.ParseBool.
func (h *Handler) getTodos(w http.ResponseWriter, r *http.Request) {
	tokenData, _, err := todoRequest(r, false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var filter models.TodoFilter
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			h.writeError(w, r, fmt.Errorf("%w: completed=%q", service.ErrInvalidDataProvided, raw))
			return
		}
		filter.Completed = &completed
	}

	todos, err := h.services.TodoService.GetTodos(r.Context(), tokenData, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, todos, http.StatusOK)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	tokenData, todoID, err := todoRequest(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.GetTodoByID(r.Context(), tokenData, todoID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	tokenData, todoID, err := todoRequest(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.TodoCreate
	if err = decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.UpdateTodo(r.Context(), tokenData, todoID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) completeTodo(w http.ResponseWriter, r *http.Request) {
	tokenData, todoID, err := todoRequest(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.services.TodoService.CompleteTodo(r.Context(), tokenData, todoID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, todo, http.StatusOK)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	tokenData, todoID, err := todoRequest(r, true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.TodoService.DeleteTodo(r.Context(), tokenData, todoID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
