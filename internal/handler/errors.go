// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no HTTP address. This is a fatal misconfiguration.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoRateLimiter is returned when the public routes would be served
	// without a limiter.
	errNoRateLimiter = errors.New("rate limiter is not configured")
)
