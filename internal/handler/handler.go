// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the public school site
// and of the admin back office.
package handler

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/school-cms-go/internal/menu"
	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/util"
)

// Config holds the dependencies shared by all handlers.
type Config struct {
	DB         *sql.DB
	Renderer   *render.Renderer
	Sessions   *scs.SessionManager
	Services   *service.Services
	BasePath   string // normalized, "" or "/school"
	UploadsDir string
	Static     fs.FS // embedded assets rooted at the static directory
	Version    string
	NoIndex    bool // robots.txt turns all crawlers away
}

// base carries the shared dependencies and the page helpers every handler
// uses.
type base struct {
	db       *sql.DB
	renderer *render.Renderer
	sessions *scs.SessionManager
	services *service.Services
	basePath string
}

func newBase(cfg Config) base {
	return base{
		db:       cfg.DB,
		renderer: cfg.Renderer,
		sessions: cfg.Sessions,
		services: cfg.Services,
		basePath: cfg.BasePath,
	}
}

// url prefixes a site path with the base path.
func (b base) url(path string) string {
	return menu.URL(b.basePath, path)
}

func (b base) flashError(w http.ResponseWriter, r *http.Request, path, message string) {
	flashError(w, r, b.sessions, b.url(path), message)
}

func (b base) flashSuccess(w http.ResponseWriter, r *http.Request, path, message string) {
	flashSuccess(w, r, b.sessions, b.url(path), message)
}

func (b base) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, b.url(path), http.StatusSeeOther)
}

// settings loads the site settings, falling back to the defaults.
func (b base) settings(r *http.Request) service.Settings {
	s, err := b.services.Settings.Load(r.Context())
	if err != nil && !middleware.SchemaMissing(r) {
		slog.Warn("failed to load settings", "error", err)
	}
	return s
}

// publicData prepares the layout data of a public page: settings and the
// navigation with the branch of the current page marked active.
func (b base) publicData(r *http.Request, title string, data any) render.TemplateData {
	cur := menu.Current{
		Page: middleware.GetPage(r),
		Path: r.URL.Path,
	}
	if cur.Page == model.PageCustom {
		cur.Slug = chi.URLParam(r, "slug")
	}

	nav, err := b.services.Menu.Navigation(r.Context(), cur)
	if err != nil && !middleware.SchemaMissing(r) {
		slog.Warn("failed to load navigation", "error", err)
	}

	return render.TemplateData{
		Title:         title,
		Page:          cur.Page,
		Settings:      b.settings(r),
		Nav:           nav,
		SchemaMissing: middleware.SchemaMissing(r),
		Data:          data,
	}
}

// adminData prepares the layout data of an admin screen.
func (b base) adminData(r *http.Request, title, page string, data any) render.TemplateData {
	name := session.From(b.sessions, r).AdminName()
	if admin := middleware.GetAdmin(r); admin != nil {
		name = admin.Name
	}
	return render.TemplateData{
		Title:         title,
		Page:          page,
		Settings:      b.settings(r),
		AdminName:     name,
		SchemaMissing: middleware.SchemaMissing(r),
		Data:          data,
	}
}

// withErrors attaches validation errors to data.
func withErrors(data render.TemplateData, verrs service.ValidationErrors) render.TemplateData {
	data.Errors = verrs.Messages()
	data.FieldErrors = verrs.Fields()
	return data
}

// render executes a template, logging failures as a 500.
func (b base) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := b.renderer.Render(w, r, status, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// audit records an admin action in the event log. Failures are logged only.
func (b base) audit(r *http.Request, log eventLogger, level, message string, metadata map[string]any) {
	var adminID *int64
	if id := middleware.GetAdminID(r); id > 0 {
		adminID = &id
	} else if id := session.From(b.sessions, r).AdminID(); id > 0 {
		adminID = &id
	}
	if err := log(r.Context(), level, message, adminID, util.ClientIP(r), r.URL.String(), metadata); err != nil {
		slog.Error("failed to record event", "message", message, "error", err)
	}
}

// eventLogger is the signature of the EventService category loggers.
type eventLogger func(ctx context.Context, level, message string, adminID *int64, ip, url string, metadata map[string]any) error

// formInt64 reads a posted integer field. Malformed values read as 0.
func formInt64(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue(name)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryInt64 reads an integer query parameter. Malformed values read as 0.
func queryInt64(r *http.Request, name string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get(name)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// formBool reports whether a checkbox or "1" flag was posted.
func formBool(r *http.Request, name string) bool {
	switch strings.TrimSpace(r.PostFormValue(name)) {
	case "1", "on", "true":
		return true
	}
	return false
}

// imageField describes the image input named name of a parsed admin form.
func imageField(r *http.Request, name string) service.ImageField {
	return service.ImageField{
		Request: r,
		Name:    name,
		Remove:  r.PostFormValue(fieldRemove) != "",
	}
}
