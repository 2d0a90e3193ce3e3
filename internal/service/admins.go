// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/auth"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Account messages.
const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgLoginEmail         = "Enter a valid email address."
	MsgPasswordRequired   = "Password is required."
	MsgSignInFailed       = "Unable to sign in. Confirm database setup and try again."
	MsgSetupDone          = "Admin user created. You can now log in."
	MsgSetupSchema        = "Database is not ready. Run the migrations (schoolcms -migrate) before creating the admin user."
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email
// or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSetupClosed is returned by CreateFirstAdmin once an admin exists.
var ErrSetupClosed = errors.New("admin setup already completed")

// SetupForm is the first-run admin account form.
type SetupForm struct {
	Name     string `form:"name" validate:"min=2"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=8"`
	Confirm  string `form:"confirm_password" validate:"eqfield=Password"`
}

var setupMessages = map[string]string{
	"name":             "Name must be at least 2 characters.",
	"email":            "Enter a valid email address.",
	"password":         "Password must be at least 8 characters.",
	"confirm_password": "Password confirmation does not match.",
}

// Validate checks the form.
func (f SetupForm) Validate() ValidationErrors {
	return checkStruct(f, setupMessages)
}

// LoginForm is the admin sign-in form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email":    MsgLoginEmail,
	"password": MsgPasswordRequired,
}

// Validate checks the form.
func (f LoginForm) Validate() ValidationErrors {
	return checkStruct(f, loginMessages)
}

// AdminService manages admin accounts.
type AdminService struct {
	queries *store.Queries
}

// NewAdminService creates a new AdminService.
func NewAdminService(db *sql.DB) *AdminService {
	return &AdminService{queries: store.New(db)}
}

// NeedsSetup reports whether no admin account exists yet.
func (s *AdminService) NeedsSetup(ctx context.Context) (bool, error) {
	n, err := s.queries.CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return n == 0, nil
}

// CreateFirstAdmin validates f and creates the first admin account.
func (s *AdminService) CreateFirstAdmin(ctx context.Context, f SetupForm) (store.Admin, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))

	needed, err := s.NeedsSetup(ctx)
	if err != nil {
		return store.Admin{}, err
	}
	if !needed {
		return store.Admin{}, ErrSetupClosed
	}
	if verrs := f.Validate(); len(verrs) > 0 {
		return store.Admin{}, verrs
	}

	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		return store.Admin{}, fmt.Errorf("hashing password: %w", err)
	}
	admin, err := s.queries.CreateAdmin(ctx, store.CreateAdminParams{
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return admin, fmt.Errorf("creating admin: %w", err)
	}
	return admin, nil
}

// Authenticate checks an email and password. A wrong password returns the
// matched admin together with ErrInvalidCredentials. Hashes from the legacy
// site or with outdated parameters are upgraded on success.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (store.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	admin, err := s.queries.GetAdminByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.Admin{}, fmt.Errorf("loading admin: %w", err)
	}

	ok, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil {
		slog.Warn("password check failed", "admin_id", admin.ID, "error", err, "category", "auth")
		return store.Admin{}, ErrInvalidCredentials
	}
	if !ok {
		return admin, ErrInvalidCredentials
	}

	if auth.NeedsRehash(admin.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateAdminPassword(ctx, admin.ID, hash); err != nil {
				slog.Error("failed to re-hash password", "error", err, "admin_id", admin.ID)
			} else {
				admin.PasswordHash = hash
				slog.Info("password re-hashed with current parameters", "admin_id", admin.ID)
			}
		}
	}

	now := time.Now().UTC()
	if err := s.queries.UpdateAdminLastLogin(ctx, admin.ID, now); err != nil {
		slog.Error("failed to update last login time", "error", err, "admin_id", admin.ID)
	} else {
		admin.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	}
	return admin, nil
}
