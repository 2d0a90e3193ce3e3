// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Custom page screen messages.
const (
	MsgPageToggled  = "Page visibility updated."
	MsgPageDeleted  = "Page deleted."
	MsgPageCreated  = "Custom page created."
	MsgPageUpdated  = "Custom page updated."
	MsgPageNotFound = "Page not found."
	MsgPageInvalid  = "Invalid page selected."
)

// CustomPagesHandler manages the admin-defined pages.
type CustomPagesHandler struct {
	base
}

// NewCustomPagesHandler creates a new CustomPagesHandler.
func NewCustomPagesHandler(cfg Config) *CustomPagesHandler {
	return &CustomPagesHandler{base: newBase(cfg)}
}

// CustomPagesData is rendered by the custom pages screen.
type CustomPagesData struct {
	Pages []store.CustomPage
	Form  service.CustomPageForm
}

func customPageEditURL(id int64) string {
	if id > 0 {
		return RouteCustomPages + "?id=" + strconv.FormatInt(id, 10)
	}
	return RouteCustomPages
}

func (h *CustomPagesHandler) screenData(r *http.Request, form service.CustomPageForm) render.TemplateData {
	data := CustomPagesData{Form: form}
	if !middleware.SchemaMissing(r) {
		pages, err := h.services.CustomPages.List(r.Context())
		if err != nil {
			slog.Error("failed to list custom pages", "error", err)
		}
		data.Pages = pages
	}
	return h.adminData(r, "Custom Pages", "custom_pages", data)
}

// List renders the page list with the add form, or the edit form for ?id=.
func (h *CustomPagesHandler) List(w http.ResponseWriter, r *http.Request) {
	form := service.NewCustomPageForm()
	if id := queryInt64(r, fieldID); id > 0 {
		var ok bool
		form, ok = requireEntityWithRedirect(w, r, h.sessions, h.url(RouteCustomPages), "page", MsgPageNotFound, id,
			func(id int64) (service.CustomPageForm, error) { return h.services.CustomPages.Get(r.Context(), id) })
		if !ok {
			return
		}
	}
	h.render(w, r, http.StatusOK, tmplCustomPages, h.screenData(r, form))
}

// Post handles save, toggle and delete.
func (h *CustomPagesHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteCustomPages, actions{
		ActionSave:   h.save,
		ActionToggle: h.toggle,
		ActionDelete: h.delete,
	})
}

func (h *CustomPagesHandler) save(w http.ResponseWriter, r *http.Request) {
	form := service.CustomPageForm{
		ID:        formInt64(r, fieldID),
		Title:     r.PostFormValue("title"),
		Slug:      r.PostFormValue("slug"),
		Excerpt:   r.PostFormValue("excerpt"),
		Content:   r.PostFormValue("content"),
		Enabled:   formBool(r, "is_enabled"),
		SortOrder: formInt64(r, "sort_order"),
	}
	back := customPageEditURL(form.ID)

	saved, created, err := h.services.CustomPages.Save(r.Context(), form, imageField(r, "hero_image"))
	if verrs, ok := service.AsValidation(err); ok {
		h.render(w, r, http.StatusUnprocessableEntity, tmplCustomPages, withErrors(h.screenData(r, saved), verrs))
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		h.flashError(w, r, RouteCustomPages, MsgPageNotFound)
		return
	}
	if err != nil {
		h.failMutation(w, r, back, "save the page", err)
		return
	}

	msg, event := MsgPageUpdated, "Custom page updated"
	if created {
		msg, event = MsgPageCreated, "Custom page created"
	}
	h.audit(r, h.services.Events.LogContentEvent, model.EventLevelInfo, event,
		map[string]any{"page_id": saved.ID, "slug": saved.Slug})
	h.flashSuccess(w, r, RouteCustomPages, msg)
}

func (h *CustomPagesHandler) toggle(w http.ResponseWriter, r *http.Request) {
	id := formInt64(r, fieldID)
	enabled := formBool(r, fieldEnabled)
	if id <= 0 {
		h.flashError(w, r, RouteCustomPages, MsgPageInvalid)
		return
	}
	if err := h.services.CustomPages.SetEnabled(r.Context(), id, enabled); err != nil {
		h.failMutation(w, r, RouteCustomPages, "update the page", err)
		return
	}
	h.audit(r, h.services.Events.LogContentEvent, model.EventLevelInfo, "Custom page visibility updated",
		map[string]any{"page_id": id, "enabled": enabled})
	h.flashSuccess(w, r, RouteCustomPages, MsgPageToggled)
}

func (h *CustomPagesHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := formInt64(r, fieldID)
	if id <= 0 {
		h.flashError(w, r, RouteCustomPages, MsgPageInvalid)
		return
	}
	row, err := h.services.CustomPages.Delete(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		h.flashError(w, r, RouteCustomPages, MsgPageNotFound)
		return
	}
	if err != nil {
		h.failMutation(w, r, RouteCustomPages, "delete the page", err)
		return
	}
	h.audit(r, h.services.Events.LogContentEvent, model.EventLevelWarning, "Custom page deleted",
		map[string]any{"page_id": id, "slug": row.Slug})
	h.flashSuccess(w, r, RouteCustomPages, MsgPageDeleted)
}
