// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements fixed-window request quotas keyed by client
// and route.
//
// A window opens on the first admitted request for a key and lasts
// Rule.Window. Up to Rule.Requests requests are admitted inside it; further
// requests are rejected without being counted until the window expires, at
// which point the next request opens a fresh window.
//
// Two [Limiter] backends are provided: [MemoryLimiter] for a single process
// and [RedisLimiter] for counters shared between instances.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter decides whether a request identified by key fits into rule.
//
// A rejected request is reported as Decision{Allowed: false} with a nil
// error. A non-nil error means the decision could not be made.
type Limiter interface {
	Allow(ctx context.Context, key Key, rule Rule) (Decision, error)
}

// Key identifies one counter: a client on a route.
type Key struct {
	// Client is the caller identity, usually the remote IP.
	Client string
	// Route is the logical endpoint name ("login", "register", ...).
	Route string
}

func (k Key) String() string {
	return k.Route + ":" + k.Client
}

// Rule is a quota of Requests per fixed Window.
type Rule struct {
	Requests int
	Window   time.Duration
}

// Validate returns ErrInvalidRule unless both fields are positive.
func (r Rule) Validate() error {
	if r.Requests <= 0 || r.Window <= 0 {
		return fmt.Errorf("%w: %d requests per %s", ErrInvalidRule, r.Requests, r.Window)
	}
	return nil
}

// Decision is the outcome of a single [Limiter.Allow] call.
type Decision struct {
	Allowed bool
	// Limit is the quota of the window.
	Limit int
	// Remaining is how many more requests the current window admits.
	Remaining int
	// ResetAt is the instant the current window expires.
	ResetAt time.Time
}

// RetryAfter returns the time left until ResetAt, rounded up to whole
// seconds and never less than one second.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < time.Second {
		return time.Second
	}
	return (wait + time.Second - 1).Truncate(time.Second)
}
