// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/render"
	"github.com/olegiv/school-cms-go/internal/service"
)

// Menu builder messages.
const (
	MsgMenuToggled  = "Menu item visibility updated."
	MsgMenuDeleted  = "Menu item deleted."
	MsgMenuCreated  = "Menu item created."
	MsgMenuUpdated  = "Menu item updated."
	MsgMenuNotFound = "Menu item not found."
	MsgMenuInvalid  = "Invalid menu item selected."
)

// MenusHandler handles the navigation menu builder.
type MenusHandler struct {
	base
}

// NewMenusHandler creates a new MenusHandler.
func NewMenusHandler(cfg Config) *MenusHandler {
	return &MenusHandler{base: newBase(cfg)}
}

// MenuScreenData is rendered by the menu builder.
type MenuScreenData struct {
	Menu        service.AdminMenu
	Form        service.MenuForm
	Types       []model.Option
	StaticPages []model.StaticPage
}

func menuEditURL(id int64) string {
	if id > 0 {
		return RouteMenu + "?id=" + strconv.FormatInt(id, 10)
	}
	return RouteMenu
}

func (h *MenusHandler) screenData(r *http.Request, form service.MenuForm) render.TemplateData {
	data := MenuScreenData{
		Form:        form,
		Types:       model.MenuTypeLabels,
		StaticPages: model.StaticPages,
	}
	if !middleware.SchemaMissing(r) {
		m, err := h.services.Menu.Admin(r.Context(), form.ID)
		if err != nil {
			slog.Error("failed to load menu items", "error", err)
		}
		data.Menu = m
	}
	return h.adminData(r, "Menu Builder", "menu", data)
}

// List renders the menu tree with the add form, or the edit form for ?id=.
func (h *MenusHandler) List(w http.ResponseWriter, r *http.Request) {
	form := service.NewMenuForm()
	if id := queryInt64(r, fieldID); id > 0 {
		var ok bool
		form, ok = requireEntityWithRedirect(w, r, h.sessions, h.url(RouteMenu), "menu item", MsgMenuNotFound, id,
			func(id int64) (service.MenuForm, error) { return h.services.Menu.Get(r.Context(), id) })
		if !ok {
			return
		}
	}
	h.render(w, r, http.StatusOK, tmplMenu, h.screenData(r, form))
}

// Post handles save, toggle and delete.
func (h *MenusHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteMenu, actions{
		ActionSave:   h.save,
		ActionToggle: h.toggle,
		ActionDelete: h.delete,
	})
}

// menuFormFromRequest reads the posted item. Static items post their page
// id from a select; the other types share the free-text link field.
func menuFormFromRequest(r *http.Request) service.MenuForm {
	f := service.MenuForm{
		ID:           formInt64(r, fieldID),
		ParentID:     formInt64(r, "parent_id"),
		Label:        r.PostFormValue("label"),
		Type:         r.PostFormValue("item_type"),
		LinkValue:    r.PostFormValue("link_value"),
		PageID:       formInt64(r, "page_id"),
		IconClass:    r.PostFormValue("icon_class"),
		OpenInNewTab: formBool(r, "open_in_new_tab"),
		Enabled:      formBool(r, "is_enabled"),
		SortOrder:    formInt64(r, "sort_order"),
	}
	if f.Type == model.MenuTypeStatic {
		f.LinkValue = r.PostFormValue("static_link_value")
	}
	return f
}

func (h *MenusHandler) save(w http.ResponseWriter, r *http.Request) {
	form := menuFormFromRequest(r)

	saved, created, err := h.services.Menu.Save(r.Context(), form)
	if verrs, ok := service.AsValidation(err); ok {
		h.render(w, r, http.StatusUnprocessableEntity, tmplMenu, withErrors(h.screenData(r, saved), verrs))
		return
	}
	if err != nil {
		h.failMutation(w, r, menuEditURL(form.ID), "save the menu item", err)
		return
	}

	msg, event := MsgMenuUpdated, "Menu item updated"
	if created {
		msg, event = MsgMenuCreated, "Menu item created"
	}
	h.audit(r, h.services.Events.LogMenuEvent, model.EventLevelInfo, event,
		map[string]any{"item_id": saved.ID, "label": saved.Label, "type": saved.Type})
	h.flashSuccess(w, r, RouteMenu, msg)
}

func (h *MenusHandler) toggle(w http.ResponseWriter, r *http.Request) {
	id := formInt64(r, fieldID)
	enabled := formBool(r, fieldEnabled)
	if id <= 0 {
		h.flashError(w, r, RouteMenu, MsgMenuInvalid)
		return
	}
	if err := h.services.Menu.SetEnabled(r.Context(), id, enabled); err != nil {
		h.failMutation(w, r, RouteMenu, "update the menu item", err)
		return
	}
	h.audit(r, h.services.Events.LogMenuEvent, model.EventLevelInfo, "Menu item visibility updated",
		map[string]any{"item_id": id, "enabled": enabled})
	h.flashSuccess(w, r, RouteMenu, MsgMenuToggled)
}

func (h *MenusHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := formInt64(r, fieldID)
	if id <= 0 {
		h.flashError(w, r, RouteMenu, MsgMenuInvalid)
		return
	}
	if err := h.services.Menu.Delete(r.Context(), id); err != nil {
		h.failMutation(w, r, RouteMenu, "delete the menu item", err)
		return
	}
	h.audit(r, h.services.Events.LogMenuEvent, model.EventLevelWarning, "Menu item deleted",
		map[string]any{"item_id": id})
	h.flashSuccess(w, r, RouteMenu, MsgMenuDeleted)
}
