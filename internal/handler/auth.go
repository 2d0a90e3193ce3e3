// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/util"
)

// AuthHandler handles the first-admin setup, login and logout.
type AuthHandler struct {
	base
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(cfg Config, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{base: newBase(cfg), loginProtection: lp}
}

// LoginPageData is rendered by the login page.
type LoginPageData struct {
	Email string
}

// SetupPageData is rendered by the setup page.
type SetupPageData struct {
	Name  string
	Email string
	Ready bool // schema present and no admin yet
}

func (h *AuthHandler) authData(r *http.Request, title string, data any) render.TemplateData {
	return h.adminData(r, title, "", data)
}

// LoginForm renders the login page. Signed-in admins go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if session.From(h.sessions, r).IsAdmin() {
		h.redirect(w, r, RouteAdmin)
		return
	}
	h.render(w, r, http.StatusOK, tmplLogin, h.authData(r, "Admin Login", LoginPageData{}))
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		logAndHTTPError(w, "Bad Request", http.StatusBadRequest, "failed to parse login form", "error", err)
		return
	}

	form := service.LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := h.authData(r, "Admin Login", LoginPageData{Email: form.Email})
	fail := func(messages ...string) {
		data.Errors = messages
		h.render(w, r, http.StatusUnprocessableEntity, tmplLogin, data)
	}

	if !session.From(h.sessions, r).VerifyForm() {
		fail(MsgInvalidTokenRefresh)
		return
	}
	if verrs := form.Validate(); len(verrs) > 0 {
		fail(verrs.Messages()...)
		return
	}

	email := strings.ToLower(form.Email)
	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.audit(r, h.services.Events.LogAuthEvent, model.EventLevelWarning, "Login attempt on locked account", map[string]any{"email": email})
			fail(lockedMessage(remaining))
			return
		}
	}

	admin, err := h.services.Admins.Authenticate(r.Context(), email, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.audit(r, h.services.Events.LogAuthEvent, model.EventLevelWarning, "Login failed", map[string]any{"email": email})
		fail(h.failedAttempt(r, email))
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err, "category", model.EventCategoryAuth)
		fail(service.MsgSignInFailed)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}
	if err := session.From(h.sessions, r).SignIn(admin.ID, admin.Name); err != nil {
		logAndInternalError(w, "failed to start admin session", "error", err)
		return
	}

	adminID := admin.ID
	if err := h.services.Events.LogAuthEvent(r.Context(), model.EventLevelInfo, "Admin signed in", &adminID, util.ClientIP(r), r.URL.String(), map[string]any{"email": email}); err != nil {
		slog.Error("failed to record event", "error", err)
	}
	h.redirect(w, r, RouteAdmin)
}

// failedAttempt records a failed login and returns the message to show.
func (h *AuthHandler) failedAttempt(r *http.Request, email string) string {
	if h.loginProtection == nil {
		return service.MsgInvalidCredentials
	}
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		h.audit(r, h.services.Events.LogAuthEvent, model.EventLevelWarning, "Account locked due to failed attempts",
			map[string]any{"email": email, "duration": lockDuration.String()})
		return lockedMessage(lockDuration)
	}
	if remaining := h.loginProtection.RemainingAttempts(email); remaining > 0 && remaining <= 3 {
		return fmt.Sprintf("%s %d attempts remaining before the account is locked.", service.MsgInvalidCredentials, remaining)
	}
	return service.MsgInvalidCredentials
}

func lockedMessage(d time.Duration) string {
	return fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(d))
}

// Logout signs the admin out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if !h.verifiedForm(w, r, RouteAdmin) {
		return
	}

	sess := session.From(h.sessions, r)
	adminID := sess.AdminID()
	if err := sess.SignOut(); err != nil {
		logAndInternalError(w, "failed to end admin session", "error", err)
		return
	}
	if adminID > 0 {
		if err := h.services.Events.LogAuthEvent(r.Context(), model.EventLevelInfo, "Admin signed out", &adminID, util.ClientIP(r), r.URL.String(), nil); err != nil {
			slog.Error("failed to record event", "error", err)
		}
	}
	h.flashSuccess(w, r, RouteLogin, MsgLoggedOut)
}

// setupState reports whether setup may run. The error is the message to
// show when the schema is missing.
func (h *AuthHandler) setupState(r *http.Request) (open bool, schemaErr string) {
	if middleware.SchemaMissing(r) {
		return false, service.MsgSetupSchema
	}
	needed, err := h.services.Admins.NeedsSetup(r.Context())
	if err != nil {
		slog.Error("failed to check admin accounts", "error", err)
		return false, service.MsgSetupSchema
	}
	return needed, ""
}

// SetupForm renders the first-admin form. Once an admin exists it
// redirects to the login page.
func (h *AuthHandler) SetupForm(w http.ResponseWriter, r *http.Request) {
	open, schemaErr := h.setupState(r)
	data := h.authData(r, "Admin Setup", SetupPageData{Ready: open})
	if schemaErr != "" {
		data.Errors = []string{schemaErr}
		h.render(w, r, http.StatusOK, tmplSetup, data)
		return
	}
	if !open {
		h.redirect(w, r, RouteLogin)
		return
	}
	h.render(w, r, http.StatusOK, tmplSetup, data)
}

// Setup creates the first admin account.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	open, schemaErr := h.setupState(r)
	if schemaErr == "" && !open {
		h.redirect(w, r, RouteLogin)
		return
	}
	if err := parseForm(w, r); err != nil {
		logAndHTTPError(w, "Bad Request", http.StatusBadRequest, "failed to parse setup form", "error", err)
		return
	}

	form := service.SetupForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm_password"),
	}
	data := h.authData(r, "Admin Setup", SetupPageData{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
		Ready: open,
	})
	fail := func(messages ...string) {
		data.Errors = messages
		h.render(w, r, http.StatusUnprocessableEntity, tmplSetup, data)
	}

	if schemaErr != "" {
		fail(schemaErr)
		return
	}
	if !session.From(h.sessions, r).VerifyForm() {
		fail(MsgInvalidTokenRefresh)
		return
	}

	admin, err := h.services.Admins.CreateFirstAdmin(r.Context(), form)
	if verrs, ok := service.AsValidation(err); ok {
		data = withErrors(data, verrs)
		h.render(w, r, http.StatusUnprocessableEntity, tmplSetup, data)
		return
	}
	if errors.Is(err, service.ErrSetupClosed) {
		h.redirect(w, r, RouteLogin)
		return
	}
	if err != nil {
		slog.Error("failed to create admin", "error", err, "category", model.EventCategoryAuth)
		fail(service.MsgSignInFailed)
		return
	}

	adminID := admin.ID
	if err := h.services.Events.LogAuthEvent(r.Context(), model.EventLevelInfo, "Admin account created", &adminID, util.ClientIP(r), r.URL.String(), map[string]any{"email": admin.Email}); err != nil {
		slog.Error("failed to record event", "error", err)
	}
	h.flashSuccess(w, r, RouteLogin, service.MsgSetupDone)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
