// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for back-office
// authentication, request context, and abuse protection.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	ContextKeyAdmin         ContextKey = "admin"
	ContextKeySchemaMissing ContextKey = "schema_missing"
)

// RequireAdmin redirects to loginURL unless the session holds an admin id.
func RequireAdmin(sm *scs.SessionManager, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.From(sm, r).IsAdmin() {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoadAdmin puts the signed-in admin record into the request context.
// A session pointing at a deleted admin is destroyed and sent to loginURL.
// Other lookup errors leave the context empty so the page can still render
// the schema warning.
func LoadAdmin(sm *scs.SessionManager, db *sql.DB, loginURL string) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := session.From(sm, r).AdminID()
			if id == 0 {
				next.ServeHTTP(w, r)
				return
			}

			admin, err := queries.GetAdminByID(r.Context(), id)
			if errors.Is(err, sql.ErrNoRows) {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}
			if err != nil {
				slog.Warn("failed to load admin", "admin_id", id, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the admin loaded by LoadAdmin, or nil.
func GetAdmin(r *http.Request) *store.Admin {
	admin, ok := r.Context().Value(ContextKeyAdmin).(store.Admin)
	if !ok {
		return nil
	}
	return &admin
}

// GetAdminID returns the loaded admin's id, or 0.
func GetAdminID(r *http.Request) int64 {
	if admin := GetAdmin(r); admin != nil {
		return admin.ID
	}
	return 0
}

// SchemaCheck flags requests served while required tables are missing.
// Pages keep rendering and show a warning instead of failing outright.
func SchemaCheck(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := store.SchemaReady(r.Context(), db); err != nil {
				if errors.Is(err, store.ErrSchemaMissing) {
					slog.Warn("database schema incomplete", "error", err)
				} else {
					slog.Error("schema check failed", "error", err)
				}
				r = r.WithContext(context.WithValue(r.Context(), ContextKeySchemaMissing, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SchemaMissing reports whether SchemaCheck found missing tables.
func SchemaMissing(r *http.Request) bool {
	missing, _ := r.Context().Value(ContextKeySchemaMissing).(bool)
	return missing
}
