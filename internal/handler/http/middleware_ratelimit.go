// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/config"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/ratelimit"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// rateLimit admits at most quota.Requests per quota.Window for each client
// on route. Every answered request carries the X-RateLimit-* headers; a
// rejected one also gets Retry-After and 429. A limiter failure is a 500, the
// request is never let through unchecked.
func (h *Handler) rateLimit(route string, quota config.Quota) func(http.Handler) http.Handler {
	rule := ratelimit.Rule{Requests: quota.Requests, Window: quota.Window}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)
			key := ratelimit.Key{Client: clientKey(r), Route: route}

			decision, err := h.limiter.Allow(r.Context(), key, rule)
			if err != nil {
				h.writeError(w, r, err)
				return
			}

			header := w.Header()
			header.Set(headerRateLimitLimit, strconv.Itoa(decision.Limit))
			header.Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))
			header.Set(headerRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := decision.RetryAfter(time.Now())
				header.Set(headerRetryAfter, strconv.Itoa(int(retryAfter/time.Second)))
				log.Warn().Str("route", route).Str("client", key.Client).Msg("rate limit exceeded")
				h.writeError(w, r, ErrRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the remote IP of r without the port. middleware.RealIP runs
// before this and may already have replaced RemoteAddr with a bare IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
