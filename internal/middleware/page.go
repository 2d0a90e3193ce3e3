// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
)

// ContextKeyPage holds the identifier of the public page being served.
const ContextKeyPage ContextKey = "page"

// Page tags every request with the built-in page identifier id, which the
// navigation uses to mark the active menu branch.
func Page(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ContextKeyPage, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPage returns the page identifier set by Page, or "".
func GetPage(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyPage).(string)
	return id
}
