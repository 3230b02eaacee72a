// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
)

// limiterCacheSize bounds the number of client addresses tracked at once.
// The least recently seen address is forgotten first.
const limiterCacheSize = 4096

// rateLimiter is a token bucket per client IP.
type rateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *lru.Cache[string, *rate.Limiter]
}

// newRateLimiter returns a limiter allowing perSecond requests with the given
// burst per client. A non-positive rate disables limiting.
func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	// the size is a positive constant, lru.New cannot fail
	cache, _ := lru.New[string, *rate.Limiter](limiterCacheSize)

	return &rateLimiter{limit: rate.Limit(perSecond), burst: burst, limiters: cache}
}

func (l *rateLimiter) allow(key string) bool {
	if l.limit <= 0 {
		return true
	}

	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		// a concurrent first request may have stored one already
		if prev, found, _ := l.limiters.PeekOrAdd(key, limiter); found {
			limiter = prev
		}
	}
	return limiter.Allow()
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			logger.FromRequest(r).Warn().Str("remote_addr", r.RemoteAddr).Msg("rate limit exceeded")
			http.Error(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
