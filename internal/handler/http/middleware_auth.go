package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces bearer authentication.
//
// It reads the "Authorization" header, extracts the bearer token and resolves
// it through [service.AuthService.VerifyToken]. On success the caller
// identity is stored in the request context with [utils.WithTokenData].
//
// A missing or malformed header is reported as not authenticated, a token
// that fails verification as invalid credentials. Both are answered with 401
// and a "WWW-Authenticate: Bearer" challenge.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, r, service.ErrNotAuthenticated)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", service.ErrNotAuthenticated, err))
			return
		}

		ctx := r.Context()
		tokenData, err := h.services.AuthService.VerifyToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		log.Debug().Str("user_id", tokenData.UserID.String()).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithTokenData(ctx, tokenData)))
	})
}
