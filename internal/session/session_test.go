// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// loadedRequest returns a request whose context carries a fresh session.
func loadedRequest(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("sm.Load: %v", err)
	}
	return r.WithContext(ctx)
}

func TestNew_DevMode(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name == "__Host-session" {
		t.Error("expected default cookie name in dev mode")
	}
	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}

func TestNew_ProductionMode(t *testing.T) {
	sm := New(setupTestDB(t), false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-session" {
		t.Errorf("expected __Host-session cookie name, got %q", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	sm := New(setupTestDB(t), true)

	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Lifetime = %v, want 24h", sm.Lifetime)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestContext_Token(t *testing.T) {
	sm := New(setupTestDB(t), true)
	r := loadedRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sc := From(sm, r)

	tok := sc.Token()
	if len(tok) != 64 {
		t.Fatalf("len(Token()) = %d, want 64", len(tok))
	}
	if again := sc.Token(); again != tok {
		t.Error("Token() should be stable within a session")
	}
	if !sc.VerifyToken(tok) {
		t.Error("VerifyToken(own token) = false")
	}
	if sc.VerifyToken("") || sc.VerifyToken(strings.Repeat("0", 64)) {
		t.Error("VerifyToken accepted a wrong token")
	}
}

func TestContext_VerifyTokenWithoutIssue(t *testing.T) {
	sm := New(setupTestDB(t), true)
	r := loadedRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))

	if From(sm, r).VerifyToken("") {
		t.Error("empty token must not match an unissued token")
	}
}

func TestContext_VerifyForm(t *testing.T) {
	sm := New(setupTestDB(t), true)
	get := loadedRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	tok := From(sm, get).Token()

	form := url.Values{CSRFFieldName: {tok}}
	post := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post = post.WithContext(get.Context())

	if !From(sm, post).VerifyForm() {
		t.Error("VerifyForm() = false for the issued token")
	}
}

func TestContext_Flash(t *testing.T) {
	sm := New(setupTestDB(t), true)
	r := loadedRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sc := From(sm, r)

	sc.Flash(FlashError, "Section not found.")
	kind, msg := sc.PopFlash()
	if kind != FlashError || msg != "Section not found." {
		t.Errorf("PopFlash() = %q, %q", kind, msg)
	}
	if _, msg := sc.PopFlash(); msg != "" {
		t.Errorf("flash should be cleared, got %q", msg)
	}
}

func TestContext_SignInOut(t *testing.T) {
	sm := New(setupTestDB(t), true)
	r := loadedRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sc := From(sm, r)

	if sc.IsAdmin() {
		t.Fatal("fresh session should not be signed in")
	}
	if sc.AdminName() != "Administrator" {
		t.Errorf("AdminName() = %q, want fallback", sc.AdminName())
	}

	before := sc.Token()
	if err := sc.SignIn(7, "Priya"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sc.AdminID() != 7 || sc.AdminName() != "Priya" {
		t.Errorf("after SignIn: id=%d name=%q", sc.AdminID(), sc.AdminName())
	}
	if sc.Token() == before {
		t.Error("SignIn should rotate the form token")
	}

	if err := sc.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if sc.IsAdmin() {
		t.Error("still signed in after SignOut")
	}
}
