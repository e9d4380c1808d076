package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		DB:     newPostgresDB(db, l),
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var userRowColumns = []string{"id", "email", "first_name", "last_name", "password_hash"}

const (
	insertUserSQL   = `INSERT INTO users (id,email,first_name,last_name,password_hash) VALUES ($1,$2,$3,$4,$5)`
	selectByEmail   = `SELECT id, email, first_name, last_name, password_hash FROM users WHERE email = $1`
	selectByID      = `SELECT id, email, first_name, last_name, password_hash FROM users WHERE id = $1`
	updateHashSQL   = `UPDATE users SET password_hash = $1 WHERE id = $2`
	testEmail       = "john@example.com"
	testDigest      = "$2a$10$abcdefghijklmnopqrstuu5Zb8oV6i8Gr3hHBJxwU0wYw3m1l2dGK"
	testReplacement = "$2a$12$abcdefghijklmnopqrstuu5Zb8oV6i8Gr3hHBJxwU0wYw3m1l2dGK"
)

func testUser() models.User {
	return models.User{
		UserID:       uuid.MustParse("0190f1a4-7b7e-7c3a-9c53-6d0e5f1b2a3c"),
		Email:        testEmail,
		FirstName:    "John",
		LastName:     "Doe",
		PasswordHash: testDigest,
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := testUser()
	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WithArgs(user.UserID, user.Email, user.FirstName, user.LastName, user.PasswordHash).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != user {
		t.Errorf("expected %+v, got %+v", user, created)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_SQLiteUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := &userRepository{DB: newSQLiteDB(db, logger.Nop()), logger: logger.Nop()}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id,email,first_name,last_name,password_hash) VALUES (?,?,?,?,?)`)).
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique})

	_, err = repo.CreateUser(context.Background(), testUser())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_OtherError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
		WillReturnError(pgError(pgerrcode.NotNullViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
	if errors.Is(err, ErrEmailAlreadyExists) {
		t.Error("not-null violation must not be reported as duplicate email")
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := testUser()
	mock.ExpectQuery(regexp.QuoteMeta(selectByEmail)).
		WithArgs(testEmail).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(user.UserID.String(), user.Email, user.FirstName, user.LastName, user.PasswordHash))

	found, err := repo.FindUserByEmail(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != user {
		t.Errorf("expected %+v, got %+v", user, found)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectByEmail)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_RetriesTransientError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := testUser()
	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs(user.UserID).
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs(user.UserID).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(user.UserID.String(), user.Email, user.FirstName, user.LastName, user.PasswordHash))

	found, err := repo.FindUserByID(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != user.UserID {
		t.Errorf("expected user %s, got %s", user.UserID, found.UserID)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindUserByID_NonRetryableError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := testUser()
	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs(user.UserID).
		WillReturnError(pgError(pgerrcode.SyntaxError))

	_, err := repo.FindUserByID(context.Background(), user.UserID)
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected retry: %v", err)
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	user := testUser()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "updated",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(updateHashSQL)).
					WithArgs(testReplacement, user.UserID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no such user",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(updateHashSQL)).
					WithArgs(testReplacement, user.UserID).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNoUserWasFound,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(updateHashSQL)).
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newTestUserRepo(t)
			defer db.Close()
			tt.setup(mock)

			err := repo.UpdatePasswordHash(context.Background(), user.UserID, testReplacement)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
