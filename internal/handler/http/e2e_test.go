package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// e2eClient drives a router wired to real services over in-memory SQLite.
type e2eClient struct {
	t      *testing.T
	router http.Handler
}

func newE2EClient(t *testing.T) *e2eClient {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewConnect(ctx, config.DB{DSN: "sqlite::memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	cfg := testConfig()
	cfg.App = config.App{
		TokenSignKey:  "e2e-secret",
		TokenIssuer:   "go-todo-keeper",
		TokenDuration: time.Minute,
		BcryptCost:    4,
		Version:       "e2e",
	}

	svcs, err := service.NewServices(store.NewRepositories(db, logger.Nop()), cfg, logger.Nop())
	require.NoError(t, err)

	h := NewHandler(svcs, ratelimit.NewMemoryLimiter(), cfg, logger.Nop())
	return &e2eClient{t: t, router: h.Init()}
}

func (c *e2eClient) do(method, target, contentType, body, token string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	return rr
}

func (c *e2eClient) json(method, target, body, token string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(method, target, "application/json", body, token)
}

func (c *e2eClient) register(email, password string) {
	c.t.Helper()
	body := `{"email":"` + email + `","password":"` + password + `","first_name":"Test","last_name":"User"}`
	rr := c.json(http.MethodPost, "/auth/", body, "")
	require.Equal(c.t, http.StatusCreated, rr.Code, rr.Body.String())
}

func (c *e2eClient) login(email, password string) *httptest.ResponseRecorder {
	c.t.Helper()
	form := url.Values{"username": {email}, "password": {password}, "grant_type": {"password"}}.Encode()
	return c.do(http.MethodPost, "/auth/token", "application/x-www-form-urlencoded", form, "")
}

func (c *e2eClient) token(email, password string) string {
	c.t.Helper()
	rr := c.login(email, password)
	require.Equal(c.t, http.StatusOK, rr.Code, rr.Body.String())

	var token models.AccessToken
	require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), &token))
	require.Equal(c.t, models.TokenTypeBearer, token.TokenType)
	require.NotEmpty(c.t, token.AccessToken)
	return token.AccessToken
}

func decodeTodo(t *testing.T, rr *httptest.ResponseRecorder) models.Todo {
	t.Helper()
	var todo models.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &todo))
	return todo
}

func TestEndToEnd(t *testing.T) {
	c := newE2EClient(t)

	const (
		aliceEmail = "alice@example.com"
		bobEmail   = "bob@example.com"
		password   = "correct-horse"
	)

	c.register(aliceEmail, password)
	c.register(bobEmail, password)

	t.Run("duplicate email", func(t *testing.T) {
		body := `{"email":"` + aliceEmail + `","password":"another-pass","first_name":"A","last_name":"B"}`
		rr := c.json(http.MethodPost, "/auth/", body, "")
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("login failures look alike", func(t *testing.T) {
		wrong := c.login(aliceEmail, "wrong-password")
		unknown := c.login("nobody@example.com", password)

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	alice := c.token(aliceEmail, password)
	bob := c.token(bobEmail, password)

	t.Run("me", func(t *testing.T) {
		rr := c.json(http.MethodGet, "/users/me", "", alice)
		require.Equal(t, http.StatusOK, rr.Code)

		var me models.UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
		assert.Equal(t, aliceEmail, me.Email)
		assert.NotContains(t, rr.Body.String(), "password")
	})

	created := c.json(http.MethodPost, "/todos/", `{"description":"buy milk"}`, alice)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	todo := decodeTodo(t, created)
	assert.Equal(t, models.DefaultPriority, todo.Priority)
	assert.False(t, todo.IsCompleted)
	todoPath := "/todos/" + todo.ID.String()

	t.Run("owner isolation", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, c.json(http.MethodGet, todoPath, "", bob).Code)
		assert.Equal(t, http.StatusNotFound, c.json(http.MethodPut, todoPath, `{"description":"hijack"}`, bob).Code)
		assert.Equal(t, http.StatusNotFound, c.json(http.MethodPut, todoPath+"/complete", "", bob).Code)
		assert.Equal(t, http.StatusNotFound, c.json(http.MethodDelete, todoPath, "", bob).Code)

		rr := c.json(http.MethodGet, "/todos/", "", bob)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())

		// untouched by bob's attempts
		rr = c.json(http.MethodGet, todoPath, "", alice)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "buy milk", decodeTodo(t, rr).Description)
	})

	t.Run("update and complete", func(t *testing.T) {
		rr := c.json(http.MethodPut, todoPath, `{"description":"buy oat milk","priority":"High"}`, alice)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, models.PriorityHigh, decodeTodo(t, rr).Priority)

		rr = c.json(http.MethodPut, todoPath+"/complete", "", alice)
		require.Equal(t, http.StatusOK, rr.Code)
		done := decodeTodo(t, rr)
		assert.True(t, done.IsCompleted)
		require.NotNil(t, done.CompletedAt)

		rr = c.json(http.MethodGet, "/todos/?completed=false", "", alice)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("invalid todo", func(t *testing.T) {
		rr := c.json(http.MethodPost, "/todos/", `{"description":"x","priority":"Urgent"}`, alice)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "priority")
	})

	t.Run("password change", func(t *testing.T) {
		rr := c.json(http.MethodPut, "/users/change-password",
			`{"current_password":"wrong-one","new_password":"new-password-1","new_password_confirm":"new-password-1"}`, alice)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = c.json(http.MethodPut, "/users/change-password",
			`{"current_password":"`+password+`","new_password":"new-password-1","new_password_confirm":"different-2"}`, alice)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = c.json(http.MethodPut, "/users/change-password",
			`{"current_password":"`+password+`","new_password":"new-password-1","new_password_confirm":"new-password-1"}`, alice)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		assert.Equal(t, http.StatusUnauthorized, c.login(aliceEmail, password).Code)
		assert.NotEmpty(t, c.token(aliceEmail, "new-password-1"))
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, c.json(http.MethodDelete, todoPath, "", alice).Code)
		assert.Equal(t, http.StatusNotFound, c.json(http.MethodGet, todoPath, "", alice).Code)
	})

	t.Run("forged token", func(t *testing.T) {
		rr := c.json(http.MethodGet, "/users/me", "", alice+"x")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
