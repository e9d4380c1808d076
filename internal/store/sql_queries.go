package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	usersTable = "users"
	todosTable = "todos"
)

var (
	userColumns = []string{"id", "email", "first_name", "last_name", "password_hash"}
	todoColumns = []string{"id", "user_id", "description", "due_date", "is_completed", "created_at", "completed_at", "priority"}
)

// ownedTodo matches a single todo of one owner. sq.And keeps the predicate
// order stable.
func ownedTodo(userID, todoID uuid.UUID) sq.And {
	return sq.And{sq.Eq{"id": todoID}, sq.Eq{"user_id": userID}}
}

func toSQL(builder sq.Sqlizer) (string, []any, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return toSQL(b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Email, user.FirstName, user.LastName, user.PasswordHash))
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return toSQL(b.Select(userColumns...).From(usersTable).Where(where))
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, userID uuid.UUID, passwordHash string) (string, []any, error) {
	return toSQL(b.Update(usersTable).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": userID}))
}

// ── todos ─────────────────────────────────────────────────────────────────────

func buildInsertTodoQuery(b sq.StatementBuilderType, todo models.Todo) (string, []any, error) {
	return toSQL(b.Insert(todosTable).
		Columns(todoColumns...).
		Values(
			todo.ID,
			todo.UserID,
			todo.Description,
			todo.DueDate,
			todo.IsCompleted,
			todo.CreatedAt,
			todo.CompletedAt,
			string(todo.Priority),
		))
}

func buildSelectTodosQuery(b sq.StatementBuilderType, userID uuid.UUID, filter models.TodoFilter) (string, []any, error) {
	where := sq.And{sq.Eq{"user_id": userID}}
	if filter.Completed != nil {
		where = append(where, sq.Eq{"is_completed": *filter.Completed})
	}

	return toSQL(b.Select(todoColumns...).
		From(todosTable).
		Where(where).
		OrderBy("created_at", "id"))
}

func buildSelectTodoQuery(b sq.StatementBuilderType, userID, todoID uuid.UUID) (string, []any, error) {
	return toSQL(b.Select(todoColumns...).From(todosTable).Where(ownedTodo(userID, todoID)))
}

func buildUpdateTodoQuery(b sq.StatementBuilderType, todo models.Todo) (string, []any, error) {
	return toSQL(b.Update(todosTable).
		Set("description", todo.Description).
		Set("due_date", todo.DueDate).
		Set("priority", string(todo.Priority)).
		Where(ownedTodo(todo.UserID, todo.ID)))
}

func buildCompleteTodoQuery(b sq.StatementBuilderType, userID, todoID uuid.UUID, completedAt time.Time) (string, []any, error) {
	return toSQL(b.Update(todosTable).
		Set("is_completed", true).
		Set("completed_at", completedAt).
		Where(ownedTodo(userID, todoID)))
}

func buildDeleteTodoQuery(b sq.StatementBuilderType, userID, todoID uuid.UUID) (string, []any, error) {
	return toSQL(b.Delete(todosTable).Where(ownedTodo(userID, todoID)))
}
