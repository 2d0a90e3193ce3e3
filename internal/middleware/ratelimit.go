// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olegiv/school-cms-go/internal/util"
)

// maxLimiterEntries bounds the per-IP limiter maps between cleanups.
const maxLimiterEntries = 10000

// MsgTooManyRequests is shown to visitors who exceed a form rate limit.
const MsgTooManyRequests = "Too many requests. Please wait a moment and try again."

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// FormRateLimiter throttles anonymous form submissions per client IP.
// Only POST requests count against the limit, so the form itself always renders.
type FormRateLimiter struct {
	cache *limiterCache[string]
}

// NewFormRateLimiter creates a limiter allowing rps submissions per second per IP.
func NewFormRateLimiter(rps float64, burst int) *FormRateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	return &FormRateLimiter{cache: newLimiterCache[string](rps, burst)}
}

// Allow reports whether another submission from ip is permitted right now.
func (rl *FormRateLimiter) Allow(ip string) bool {
	rl.cache.clearIfExceeds(maxLimiterEntries)
	return rl.cache.get(ip).Allow()
}

// Middleware answers 429 with a plain-text message when the limit is hit.
func (rl *FormRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		ip := util.ClientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("form rate limit exceeded", "ip", ip, "path", r.URL.Path)
			http.Error(w, MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
