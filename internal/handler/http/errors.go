// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrRateLimitExceeded is reported when a client used up the quota of a
// route for the current window.
var ErrRateLimitExceeded = errors.New("too many requests")

// errInvalidTodoID is reported for a path id that is not a UUID. It maps to
// 404 like a missing todo.
var errInvalidTodoID = errors.New("invalid todo id")
