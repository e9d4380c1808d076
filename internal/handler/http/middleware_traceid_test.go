package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

func executeWithTraceID(h *Handler, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name         string
		requestID    string
		wantEchoed   bool
		wantGenerate bool
	}{
		{name: "no header", wantGenerate: true},
		{name: "upstream id kept", requestID: "abc-123", wantEchoed: true},
		{name: "id with spaces replaced", requestID: "abc 123", wantGenerate: true},
		{name: "overlong id replaced", requestID: strings.Repeat("a", maxTraceIDLength+1), wantGenerate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			rr, req := executeWithTraceID(h, tt.requestID)
			require.NotNil(t, req)

			got := rr.Header().Get(traceIDHeader)
			if tt.wantEchoed {
				assert.Equal(t, tt.requestID, got)
			}
			if tt.wantGenerate {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

// TestWithTraceID_AttachesLogger verifies that downstream loggers carry the
// trace id.
func TestWithTraceID_AttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	_, req := executeWithTraceID(h, "trace-42")
	logger.FromRequest(req).Info().Msg("inside")

	assert.Contains(t, buf.String(), `"trace_id":"trace-42"`)
}
