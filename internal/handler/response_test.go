// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/school-cms-go/internal/session"
)

func TestLogAndHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		statusCode int
		logMsg     string
	}{
		{"bad request", "Bad Request", http.StatusBadRequest, "validation failed"},
		{"not found", "Not Found", http.StatusNotFound, "resource missing"},
		{"internal error", "Internal Server Error", http.StatusInternalServerError, "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			logAndHTTPError(w, tt.message, tt.statusCode, tt.logMsg)

			if w.Code != tt.statusCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.statusCode)
			}

			body := w.Body.String()
			if body == "" {
				t.Error("body should not be empty")
			}
		})
	}
}

func TestLogAndInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	logAndInternalError(w, "database connection failed", "error", errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if got["status"] != "unhealthy" {
		t.Errorf("status = %q, want unhealthy", got["status"])
	}
}

// serveWithSession runs h inside a session and returns the recorder and the
// flash left behind, if any.
func serveWithSession(t *testing.T, h func(sm *scs.SessionManager) http.HandlerFunc) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	sm := scs.New()

	var flash, flashType string
	inner := h(sm)
	wrapped := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner(w, r)
		flashType, flash = session.From(sm, r).PopFlash()
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/banners/edit?id=1", nil))
	return w, flash, flashType
}

func TestFlashAndRedirect(t *testing.T) {
	w, flash, flashType := serveWithSession(t, func(sm *scs.SessionManager) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			flashSuccess(w, r, sm, "/admin/banners", "Banner updated.")
		}
	})

	if w.Code != http.StatusSeeOther {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/banners" {
		t.Errorf("Location = %q, want /admin/banners", loc)
	}
	if flash != "Banner updated." || flashType != session.FlashSuccess {
		t.Errorf("flash = %q (%s), want %q (%s)", flash, flashType, "Banner updated.", session.FlashSuccess)
	}
}

func TestRequireEntityWithRedirect(t *testing.T) {
	type banner struct {
		ID    int64
		Title string
	}

	tests := []struct {
		name      string
		queryErr  error
		wantOK    bool
		wantFlash string
	}{
		{name: "found", wantOK: true},
		{name: "not found", queryErr: sql.ErrNoRows, wantFlash: "Banner not found."},
		{name: "wrapped not found", queryErr: errors.Join(errors.New("loading"), sql.ErrNoRows), wantFlash: "Banner not found."},
		{name: "database error", queryErr: errors.New("disk I/O error"), wantFlash: "Error loading banner."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got banner
			var ok bool
			w, flash, flashType := serveWithSession(t, func(sm *scs.SessionManager) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					got, ok = requireEntityWithRedirect(w, r, sm, "/admin/banners", "banner", "Banner not found.", 7,
						func(id int64) (banner, error) {
							if tt.queryErr != nil {
								return banner{}, tt.queryErr
							}
							return banner{ID: id, Title: "Welcome"}, nil
						})
				}
			})

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				if got.ID != 7 || got.Title != "Welcome" {
					t.Errorf("entity = %+v, want {ID:7 Title:Welcome}", got)
				}
				if flash != "" {
					t.Errorf("unexpected flash %q", flash)
				}
				return
			}

			if w.Code != http.StatusSeeOther {
				t.Errorf("status code = %d, want %d", w.Code, http.StatusSeeOther)
			}
			if flash != tt.wantFlash || flashType != session.FlashError {
				t.Errorf("flash = %q (%s), want %q (%s)", flash, flashType, tt.wantFlash, session.FlashError)
			}
			if got != (banner{}) {
				t.Errorf("entity = %+v, want zero value", got)
			}
		})
	}
}
