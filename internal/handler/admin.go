// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/service"
)

// AdminHandler renders the admin dashboard.
type AdminHandler struct {
	base
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg Config) *AdminHandler {
	return &AdminHandler{base: newBase(cfg)}
}

// Dashboard renders the overview counts, recent inquiries and recent activity.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var d service.Dashboard
	if !middleware.SchemaMissing(r) {
		var err error
		if d, err = h.services.Inquiries.Dashboard(r.Context()); err != nil {
			slog.Error("failed to load dashboard", "error", err)
		}
	}
	h.render(w, r, http.StatusOK, tmplDashboard, h.adminData(r, "Dashboard", "dashboard", d))
}
