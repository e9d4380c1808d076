package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// passwordChanged is the body of a successful password change.
type passwordChanged struct {
	Detail string `json:"detail"`
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenData, ok := utils.GetTokenDataFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrNotAuthenticated)
		return
	}

	user, err := h.services.UserService.GetUserByID(ctx, tokenData.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.NewUserResponse(user), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenData, ok := utils.GetTokenDataFromContext(ctx)
	if !ok {
		h.writeError(w, r, service.ErrNotAuthenticated)
		return
	}

	var change models.PasswordChange
	if err := decodeJSON(w, r, &change); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.ChangePassword(ctx, tokenData.UserID, change); err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", tokenData.UserID.String()).Msg("password changed")

	_, _ = utils.WriteJSON(w, passwordChanged{Detail: "password changed"}, http.StatusOK)
}
