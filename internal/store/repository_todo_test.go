package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	todoSelectList = `SELECT id, user_id, description, due_date, is_completed, created_at, completed_at, priority FROM todos`
	insertTodoSQL  = `INSERT INTO todos (id,user_id,description,due_date,is_completed,created_at,completed_at,priority) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	selectTodoSQL  = todoSelectList + ` WHERE (id = $1 AND user_id = $2)`
	updateTodoSQL  = `UPDATE todos SET description = $1, due_date = $2, priority = $3 WHERE (id = $4 AND user_id = $5)`
	completeSQL    = `UPDATE todos SET is_completed = $1, completed_at = $2 WHERE (id = $3 AND user_id = $4)`
	deleteTodoSQL  = `DELETE FROM todos WHERE (id = $1 AND user_id = $2)`
)

var todoRowColumns = []string{"id", "user_id", "description", "due_date", "is_completed", "created_at", "completed_at", "priority"}

var (
	ownerID = uuid.MustParse("0190f1a4-7b7e-7c3a-9c53-6d0e5f1b2a3c")
	todoID  = uuid.MustParse("0190f1a5-0000-7000-8000-000000000001")
	created = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func newTestTodoRepo(t *testing.T) (*todoRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	l := logger.Nop()
	return &todoRepository{DB: newPostgresDB(db, l), logger: l}, mock, db
}

func testTodo() models.Todo {
	return models.Todo{
		ID:          todoID,
		UserID:      ownerID,
		Description: "buy milk",
		CreatedAt:   created,
		Priority:    models.PriorityMedium,
	}
}

func todoRow(rows *sqlmock.Rows, todo models.Todo) *sqlmock.Rows {
	var due, completedAt any
	if todo.DueDate != nil {
		due = *todo.DueDate
	}
	if todo.CompletedAt != nil {
		completedAt = *todo.CompletedAt
	}
	return rows.AddRow(todo.ID.String(), todo.UserID.String(), todo.Description, due,
		todo.IsCompleted, todo.CreatedAt, completedAt, string(todo.Priority))
}

func TestCreateTodo(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	todo := testTodo()
	mock.ExpectExec(regexp.QuoteMeta(insertTodoSQL)).
		WithArgs(todo.ID, todo.UserID, todo.Description, nil, false, todo.CreatedAt, nil, "Medium").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.CreateTodo(context.Background(), todo)
	require.NoError(t, err)
	assert.Equal(t, todo, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTodo_Error(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertTodoSQL)).WillReturnError(pgError("23503"))

	_, err := repo.CreateTodo(context.Background(), testTodo())
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestGetTodos(t *testing.T) {
	done := true
	completedAt := created.Add(time.Hour)
	second := testTodo()
	second.ID = uuid.MustParse("0190f1a5-0000-7000-8000-000000000002")
	second.IsCompleted = true
	second.CompletedAt = &completedAt

	tests := []struct {
		name   string
		filter models.TodoFilter
		query  string
		args   []driver.Value
		rows   []models.Todo
	}{
		{
			name:  "all",
			query: todoSelectList + ` WHERE (user_id = $1) ORDER BY created_at, id`,
			args:  []driver.Value{ownerID},
			rows:  []models.Todo{testTodo(), second},
		},
		{
			name:   "completed only",
			filter: models.TodoFilter{Completed: &done},
			query:  todoSelectList + ` WHERE (user_id = $1 AND is_completed = $2) ORDER BY created_at, id`,
			args:   []driver.Value{ownerID, true},
			rows:   []models.Todo{second},
		},
		{
			name:  "empty",
			query: todoSelectList + ` WHERE (user_id = $1) ORDER BY created_at, id`,
			args:  []driver.Value{ownerID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestTodoRepo(t)
			defer db.Close()

			rows := sqlmock.NewRows(todoRowColumns)
			for _, todo := range tt.rows {
				rows = todoRow(rows, todo)
			}
			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).WithArgs(tt.args...).WillReturnRows(rows)

			got, err := repo.GetTodos(context.Background(), ownerID, tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, len(tt.rows))
			for i := range tt.rows {
				assert.Equal(t, tt.rows[i].ID, got[i].ID)
				assert.Equal(t, tt.rows[i].IsCompleted, got[i].IsCompleted)
				assert.Equal(t, tt.rows[i].CompletedAt, got[i].CompletedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetTodos_QueryError(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(todoSelectList)).WillReturnError(errors.New("boom"))

	_, err := repo.GetTodos(context.Background(), ownerID, models.TodoFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetTodos_RowError(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	rows := todoRow(sqlmock.NewRows(todoRowColumns), testTodo()).RowError(0, errors.New("broken row"))
	mock.ExpectQuery(regexp.QuoteMeta(todoSelectList)).WillReturnRows(rows)

	_, err := repo.GetTodos(context.Background(), ownerID, models.TodoFilter{})
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestGetTodo(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	due := created.Add(48 * time.Hour)
	todo := testTodo()
	todo.DueDate = &due
	mock.ExpectQuery(regexp.QuoteMeta(selectTodoSQL)).
		WithArgs(todoID, ownerID).
		WillReturnRows(todoRow(sqlmock.NewRows(todoRowColumns), todo))

	got, err := repo.GetTodo(context.Background(), ownerID, todoID)
	require.NoError(t, err)
	assert.Equal(t, todo, got)
}

func TestGetTodo_NotFound(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectTodoSQL)).
		WithArgs(todoID, ownerID).
		WillReturnRows(sqlmock.NewRows(todoRowColumns))

	_, err := repo.GetTodo(context.Background(), ownerID, todoID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdateTodo(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	todo := testTodo()
	todo.Description = "buy oat milk"
	todo.Priority = models.PriorityHigh

	mock.ExpectExec(regexp.QuoteMeta(updateTodoSQL)).
		WithArgs("buy oat milk", nil, "High", todoID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectTodoSQL)).
		WithArgs(todoID, ownerID).
		WillReturnRows(todoRow(sqlmock.NewRows(todoRowColumns), todo))

	got, err := repo.UpdateTodo(context.Background(), todo)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", got.Description)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTodo_NotOwned(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(updateTodoSQL)).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateTodo(context.Background(), testTodo())
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteTodo(t *testing.T) {
	repo, mock, db := newTestTodoRepo(t)
	defer db.Close()

	completedAt := created.Add(time.Hour)
	todo := testTodo()
	todo.IsCompleted = true
	todo.CompletedAt = &completedAt

	mock.ExpectExec(regexp.QuoteMeta(completeSQL)).
		WithArgs(true, completedAt, todoID, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectTodoSQL)).
		WithArgs(todoID, ownerID).
		WillReturnRows(todoRow(sqlmock.NewRows(todoRowColumns), todo))

	got, err := repo.CompleteTodo(context.Background(), ownerID, todoID, completedAt)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, completedAt, *got.CompletedAt)
}

func TestDeleteTodo(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing or foreign", affected: 0, wantErr: ErrTodoNotFound},
		{name: "driver error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestTodoRepo(t)
			defer db.Close()

			exp := mock.ExpectExec(regexp.QuoteMeta(deleteTodoSQL)).WithArgs(todoID, ownerID)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteTodo(context.Background(), ownerID, todoID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
