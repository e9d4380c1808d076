package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody is the error reply of the server.
type errorBody struct {
	Detail string `json:"detail"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	detail := errorDetail(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusTooManyRequests:
		if retry := resp.Header().Get("Retry-After"); retry != "" {
			return fmt.Errorf("%w: retry after %ss", ErrTooManyRequests, retry)
		}
		return fmt.Errorf("%w: %s", ErrTooManyRequests, detail)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, detail)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
	}
}

// errorDetail prefers the "detail" field of a JSON body, then the raw body,
// then the status text.
func errorDetail(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	if body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}
