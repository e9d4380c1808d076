package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// maxBodyBytes caps every request body read by the handlers.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("user registered")

	_, _ = utils.WriteJSON(w, models.NewUserResponse(user), http.StatusCreated)
}

// login implements the OAuth2 password grant. The credentials arrive as an
// application/x-www-form-urlencoded body.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid form body: %w", service.ErrInvalidDataProvided, err))
		return
	}

	form := models.LoginForm{
		Username:  r.PostForm.Get("username"),
		Password:  r.PostForm.Get("password"),
		GrantType: r.PostForm.Get("grant_type"),
	}

	token, err := h.services.AuthService.Login(ctx, form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	_, _ = utils.WriteJSON(w, token, http.StatusOK)
}
