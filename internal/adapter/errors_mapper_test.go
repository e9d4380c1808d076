package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// responseWith performs a real request so that resty fills the response.
func responseWith(t *testing.T, status int, header http.Header, body string) *resty.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		header     http.Header
		body       string
		wantErr    error
		wantDetail string
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"invalid fields: email"}`, wantErr: ErrBadRequest, wantDetail: "invalid fields: email"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"not authenticated"}`, wantErr: ErrUnauthorized, wantDetail: "not authenticated"},
		{name: "not found plain body", status: http.StatusNotFound, body: "404 page not found", wantErr: ErrNotFound, wantDetail: "404 page not found"},
		{name: "conflict", status: http.StatusConflict, body: `{"detail":"email already registered"}`, wantErr: ErrConflict},
		{
			name: "rate limited with retry", status: http.StatusTooManyRequests,
			header: http.Header{"Retry-After": {"42"}}, body: `{"detail":"too many requests"}`,
			wantErr: ErrTooManyRequests, wantDetail: "retry after 42s",
		},
		{name: "internal", status: http.StatusInternalServerError, wantErr: ErrInternalServerError, wantDetail: "Internal Server Error"},
		{name: "other", status: http.StatusGatewayTimeout, wantDetail: "http 504"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapHTTPError(responseWith(t, tt.status, tt.header, tt.body))

			if tt.wantErr == nil && tt.wantDetail == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantDetail != "" {
				assert.Contains(t, err.Error(), tt.wantDetail)
			}
		})
	}
}
