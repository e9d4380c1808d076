package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrPasswordMismatch:    http.StatusBadRequest,
	validators.ErrValidation:       http.StatusBadRequest,

	service.ErrAuthentication:   http.StatusUnauthorized,
	service.ErrNotAuthenticated: http.StatusUnauthorized,
	service.ErrInvalidPassword:  http.StatusUnauthorized,

	service.ErrTodoNotFound: http.StatusNotFound,
	service.ErrUserNotFound: http.StatusNotFound,
	errInvalidTodoID:        http.StatusNotFound,

	service.ErrEmailAlreadyExists: http.StatusConflict,

	ErrRateLimitExceeded: http.StatusTooManyRequests,
}

const internalErrorDetail = "internal server error"

// errorResponse is the body of every error reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// detailFromError returns the fixed client-facing message of err. Validation
// errors list the failing fields; unknown errors get a generic message.
func detailFromError(err error) string {
	var fieldsErr *validators.FieldsError
	if errors.As(err, &fieldsErr) {
		return "invalid fields: " + strings.Join(fieldsErr.Fields, ", ")
	}

	for target := range errorStatusMap {
		if errors.Is(err, target) {
			if target == errInvalidTodoID {
				return service.ErrTodoNotFound.Error()
			}
			return target.Error()
		}
	}
	return internalErrorDetail
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	_, _ = utils.WriteJSON(w, errorResponse{Detail: detailFromError(err)}, status)
}
