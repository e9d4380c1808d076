// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
)

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrNoToken), errors.Is(err, adapter.ErrUnauthorized):
		return "not logged in or session expired, run `login` first"
	case errors.Is(err, adapter.ErrTooManyRequests):
		return "rate limited: " + err.Error()
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "network is down or the server is unavailable"
	}

	return err.Error()
}
