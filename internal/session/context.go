// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// Session keys.
const (
	KeyAdminID   = "admin_id"
	KeyAdminName = "admin_name"
	KeyCSRFToken = "csrf_token"
	KeyFlash     = "flash"
	KeyFlashType = "flash_type"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// CSRFFieldName is the form field that carries the session token.
const CSRFFieldName = "csrf_token"

// Context is the session state of one request. Obtain it with From; the
// request must have passed through SessionManager.LoadAndSave.
type Context struct {
	sm *scs.SessionManager
	r  *http.Request
}

// From binds the session manager to r.
func From(sm *scs.SessionManager, r *http.Request) *Context {
	return &Context{sm: sm, r: r}
}

// Token returns the form token of this session, issuing one on first use.
func (c *Context) Token() string {
	ctx := c.r.Context()
	if tok := c.sm.GetString(ctx, KeyCSRFToken); tok != "" {
		return tok
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: reading random bytes: %v", err))
	}
	tok := hex.EncodeToString(b)
	c.sm.Put(ctx, KeyCSRFToken, tok)
	return tok
}

// VerifyToken reports whether token matches the session's form token.
func (c *Context) VerifyToken(token string) bool {
	expected := c.sm.GetString(c.r.Context(), KeyCSRFToken)
	if expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}

// VerifyForm checks the csrf_token field of a parsed form.
func (c *Context) VerifyForm() bool {
	return c.VerifyToken(c.r.PostFormValue(CSRFFieldName))
}

// Flash stores a one-shot message shown on the next rendered page.
func (c *Context) Flash(kind, message string) {
	ctx := c.r.Context()
	c.sm.Put(ctx, KeyFlash, message)
	c.sm.Put(ctx, KeyFlashType, kind)
}

// PopFlash returns and clears the pending flash message.
func (c *Context) PopFlash() (kind, message string) {
	ctx := c.r.Context()
	message = c.sm.PopString(ctx, KeyFlash)
	kind = c.sm.PopString(ctx, KeyFlashType)
	if message != "" && kind == "" {
		kind = FlashSuccess
	}
	return kind, message
}

// AdminID returns the signed-in admin id, or 0.
func (c *Context) AdminID() int64 {
	return c.sm.GetInt64(c.r.Context(), KeyAdminID)
}

// AdminName returns the signed-in admin's display name.
func (c *Context) AdminName() string {
	if name := c.sm.GetString(c.r.Context(), KeyAdminName); name != "" {
		return name
	}
	return "Administrator"
}

// IsAdmin reports whether an admin is signed in.
func (c *Context) IsAdmin() bool {
	return c.AdminID() > 0
}

// SignIn renews the session token and records the admin. The form token is
// rotated so one issued before login cannot be replayed after it.
func (c *Context) SignIn(id int64, name string) error {
	ctx := c.r.Context()
	if err := c.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	c.sm.Remove(ctx, KeyCSRFToken)
	c.sm.Put(ctx, KeyAdminID, id)
	c.sm.Put(ctx, KeyAdminName, name)
	return nil
}

// SignOut clears the admin identity and renews the session token.
func (c *Context) SignOut() error {
	ctx := c.r.Context()
	c.sm.Remove(ctx, KeyAdminID)
	c.sm.Remove(ctx, KeyAdminName)
	c.sm.Remove(ctx, KeyCSRFToken)
	if err := c.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}
