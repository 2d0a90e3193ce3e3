// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Section screen messages.
const (
	MsgSectionToggled  = "Section visibility updated."
	MsgSectionCreated  = "Section created successfully."
	MsgSectionUpdated  = "Section updated successfully."
	MsgSectionDeleted  = "Section deleted."
	MsgSectionNotFound = "Section not found."
	MsgSectionInvalid  = "Invalid section selected."
)

// SectionsHandler manages the sections of the built-in pages.
type SectionsHandler struct {
	base
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(cfg Config) *SectionsHandler {
	return &SectionsHandler{base: newBase(cfg)}
}

// SectionsListData is rendered by the sections list.
type SectionsListData struct {
	Pages    []model.Option
	Page     string
	Sections []store.PageSection
}

// SectionEditData is rendered by the section form.
type SectionEditData struct {
	Pages []model.Option
	Form  service.SectionForm
}

// currentPage returns the ?page= value, or home when it is unknown.
func currentPage(r *http.Request) string {
	return service.NewSectionForm(r.URL.Query().Get("page")).PageSlug
}

func sectionsURL(page string) string {
	return RouteSections + "?page=" + url.QueryEscape(page)
}

func sectionEditURL(id int64, page string) string {
	if id > 0 {
		return RouteSectionEdit + "?id=" + strconv.FormatInt(id, 10)
	}
	return RouteSectionEdit + "?page=" + url.QueryEscape(page)
}

// List renders every section of the selected page.
func (h *SectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := currentPage(r)
	data := SectionsListData{Pages: model.CMSPages, Page: page}

	if !middleware.SchemaMissing(r) {
		sections, err := h.services.Sections.List(r.Context(), page)
		if err != nil {
			slog.Error("failed to list sections", "page", page, "error", err)
		}
		data.Sections = sections
	}

	h.render(w, r, http.StatusOK, tmplAdminSections, h.adminData(r, "Page Sections", "sections", data))
}

// Post handles the list actions.
func (h *SectionsHandler) Post(w http.ResponseWriter, r *http.Request) {
	back := sectionsURL(currentPage(r))
	h.dispatch(w, r, back, actions{
		ActionToggle: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			enabled := formBool(r, fieldEnabled)
			if id <= 0 {
				h.flashError(w, r, back, MsgSectionInvalid)
				return
			}
			if err := h.services.Sections.SetEnabled(r.Context(), id, enabled); err != nil {
				h.failMutation(w, r, back, "update the section", err)
				return
			}
			h.audit(r, h.services.Events.LogContentEvent, model.EventLevelInfo, "Section visibility updated",
				map[string]any{"section_id": id, "enabled": enabled})
			h.flashSuccess(w, r, back, MsgSectionToggled)
		},
	})
}

// EditForm renders the add or edit section form.
func (h *SectionsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := queryInt64(r, fieldID)
	form := service.NewSectionForm(r.URL.Query().Get("page"))

	if id > 0 {
		var ok bool
		form, ok = requireEntityWithRedirect(w, r, h.sessions, h.url(sectionsURL(form.PageSlug)), "section", MsgSectionNotFound, id,
			func(id int64) (service.SectionForm, error) { return h.services.Sections.Get(r.Context(), id) })
		if !ok {
			return
		}
	}

	h.render(w, r, http.StatusOK, tmplSectionEdit, h.adminData(r, sectionTitle(form), "sections", SectionEditData{
		Pages: model.CMSPages,
		Form:  form,
	}))
}

func sectionTitle(f service.SectionForm) string {
	if f.ID > 0 {
		return "Edit Section"
	}
	return "Add Section"
}

// Edit saves the section form.
func (h *SectionsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := queryInt64(r, fieldID)
	back := sectionEditURL(id, currentPage(r))

	h.dispatch(w, r, back, actions{
		ActionSave: func(w http.ResponseWriter, r *http.Request) {
			form := service.SectionForm{
				ID:         formInt64(r, fieldID),
				PageSlug:   r.PostFormValue("page_slug"),
				SectionKey: r.PostFormValue("section_key"),
				Title:      r.PostFormValue("title"),
				Content:    r.PostFormValue("content"),
				Enabled:    formBool(r, "is_enabled"),
				SortOrder:  formInt64(r, "sort_order"),
			}

			saved, created, err := h.services.Sections.Save(r.Context(), form, imageField(r, "image"))
			if verrs, ok := service.AsValidation(err); ok {
				data := h.adminData(r, sectionTitle(saved), "sections", SectionEditData{Pages: model.CMSPages, Form: saved})
				h.render(w, r, http.StatusUnprocessableEntity, tmplSectionEdit, withErrors(data, verrs))
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				h.flashError(w, r, sectionsURL(saved.PageSlug), MsgSectionNotFound)
				return
			}
			if err != nil {
				h.failMutation(w, r, back, "save the section", err)
				return
			}

			msg, event := MsgSectionUpdated, "Section updated"
			if created {
				msg, event = MsgSectionCreated, "Section created"
			}
			h.audit(r, h.services.Events.LogContentEvent, model.EventLevelInfo, event,
				map[string]any{"section_id": saved.ID, "page": saved.PageSlug, "key": saved.SectionKey})
			h.flashSuccess(w, r, sectionsURL(saved.PageSlug), msg)
		},
	})
}

// Delete removes a section and its image.
func (h *SectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	back := sectionsURL(currentPage(r))
	h.dispatch(w, r, back, actions{
		ActionDelete: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, back, MsgSectionInvalid)
				return
			}
			row, err := h.services.Sections.Delete(r.Context(), id)
			if errors.Is(err, sql.ErrNoRows) {
				h.flashError(w, r, back, MsgSectionNotFound)
				return
			}
			if err != nil {
				h.failMutation(w, r, back, "delete the section", err)
				return
			}
			h.audit(r, h.services.Events.LogContentEvent, model.EventLevelInfo, "Section deleted",
				map[string]any{"section_id": id, "page": row.PageSlug, "key": row.SectionKey})
			h.flashSuccess(w, r, sectionsURL(row.PageSlug), MsgSectionDeleted)
		},
	})
}
