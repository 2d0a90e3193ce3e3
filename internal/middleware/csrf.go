// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"filippo.io/csrf/gorilla"
)

// MsgCrossOrigin is the body of the 403 sent for rejected cross-origin posts.
const MsgCrossOrigin = "Forbidden: cross-origin form submission rejected."

// CSRFConfig configures the origin guard. It complements the per-session
// form token by rejecting unsafe requests that browsers mark as cross-site.
type CSRFConfig struct {
	// AuthKey is the 32-byte session secret.
	AuthKey []byte

	ErrorHandler http.Handler

	// TrustedOrigins are host[:port] values allowed to post cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a config trusting the given origins, plus the
// local development server address when isDev is set.
func DefaultCSRFConfig(authKey []byte, isDev bool, devAddr string, trusted []string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}

	for _, origin := range trusted {
		if host := originHost(origin); host != "" {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, host)
		}
	}
	if isDev && devAddr != "" {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, devAddr)
		if port, ok := strings.CutPrefix(devAddr, "localhost:"); ok {
			cfg.TrustedOrigins = append(cfg.TrustedOrigins, "127.0.0.1:"+port)
		}
	}

	return cfg
}

// originHost strips a scheme and trailing path: the guard compares host only.
func originHost(origin string) string {
	origin = strings.TrimSpace(origin)
	if i := strings.Index(origin, "://"); i >= 0 {
		origin = origin[i+3:]
	}
	if i := strings.IndexByte(origin, '/'); i >= 0 {
		origin = origin[:i]
	}
	return origin
}

// CSRF returns the origin guard middleware.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	var opts []csrf.Option

	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)))
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, MsgCrossOrigin, http.StatusForbidden)
}

// SkipCSRF bypasses the origin guard for exact paths such as /health.
func SkipCSRF(paths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(paths))
	for _, p := range paths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				r = csrf.UnsafeSkipCheck(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}
