package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises the base URL from cfg.HTTPAddress and configures the resty
// client with it and the request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or is not a valid URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authorized returns a request carrying the bearer token.
func (h *httpServerAdapter) authorized(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

// send executes req and maps a non-2xx reply to the package errors.
func send(req *resty.Request, method, path, op string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Register(ctx context.Context, r models.RegisterUserRequest) (models.UserResponse, error) {
	var user models.UserResponse
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(r).
		SetResult(&user)

	if err := send(req, resty.MethodPost, "/auth/", "register"); err != nil {
		return models.UserResponse{}, err
	}
	return user, nil
}

// Login posts the OAuth2 password-grant form to /auth/token and stores the
// returned token.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.AccessToken, error) {
	var token models.AccessToken
	req := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username":   email,
			"password":   password,
			"grant_type": models.GrantTypePassword,
		}).
		SetResult(&token)

	if err := send(req, resty.MethodPost, "/auth/token", "login"); err != nil {
		return models.AccessToken{}, err
	}
	if token.AccessToken == "" {
		return models.AccessToken{}, fmt.Errorf("login: empty access token in response")
	}

	h.SetToken(token.AccessToken)
	h.logger.Debug().Msg("logged in")
	return token, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.UserResponse{}, err
	}

	var user models.UserResponse
	if err = send(req.SetResult(&user), resty.MethodGet, "/users/me", "me"); err != nil {
		return models.UserResponse{}, err
	}
	return user, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	req, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	req.SetHeader("Content-Type", "application/json").SetBody(change)
	return send(req, resty.MethodPut, "/users/change-password", "change password")
}

func (h *httpServerAdapter) CreateTodo(ctx context.Context, r models.TodoCreate) (models.Todo, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.Todo{}, err
	}

	var todo models.Todo
	req.SetHeader("Content-Type", "application/json").SetBody(r).SetResult(&todo)
	if err = send(req, resty.MethodPost, "/todos/", "create todo"); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (h *httpServerAdapter) ListTodos(ctx context.Context, completed *bool) ([]models.Todo, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return nil, err
	}

	if completed != nil {
		req.SetQueryParam("completed", strconv.FormatBool(*completed))
	}

	todos := []models.Todo{}
	if err = send(req.SetResult(&todos), resty.MethodGet, "/todos/", "list todos"); err != nil {
		return nil, err
	}
	return todos, nil
}

func (h *httpServerAdapter) GetTodo(ctx context.Context, id uuid.UUID) (models.Todo, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.Todo{}, err
	}

	var todo models.Todo
	if err = send(req.SetResult(&todo), resty.MethodGet, todoPath(id), "get todo"); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (h *httpServerAdapter) UpdateTodo(ctx context.Context, id uuid.UUID, r models.TodoCreate) (models.Todo, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.Todo{}, err
	}

	var todo models.Todo
	req.SetHeader("Content-Type", "application/json").SetBody(r).SetResult(&todo)
	if err = send(req, resty.MethodPut, todoPath(id), "update todo"); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (h *httpServerAdapter) CompleteTodo(ctx context.Context, id uuid.UUID) (models.Todo, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.Todo{}, err
	}

	var todo models.Todo
	if err = send(req.SetResult(&todo), resty.MethodPut, todoPath(id)+"/complete", "complete todo"); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (h *httpServerAdapter) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	req, err := h.authorized(ctx)
	if err != nil {
		return err
	}
	return send(req, resty.MethodDelete, todoPath(id), "delete todo")
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func todoPath(id uuid.UUID) string {
	return "/todos/" + id.String()
}
