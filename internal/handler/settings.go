// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/service"
)

// MsgSettingsSaved is flashed after the settings are stored.
const MsgSettingsSaved = "Settings updated successfully."

// SettingsHandler handles the site settings screen.
type SettingsHandler struct {
	base
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(cfg Config) *SettingsHandler {
	return &SettingsHandler{base: newBase(cfg)}
}

// SettingsData is rendered by the settings form.
type SettingsData struct {
	Form service.Settings
}

// Form renders the settings form with the stored values.
func (h *SettingsHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, tmplSettings, h.adminData(r, "Site Settings", "settings", SettingsData{Form: h.settings(r)}))
}

// Save stores the settings form.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteSettings, actions{
		ActionSave: func(w http.ResponseWriter, r *http.Request) {
			in := service.Settings{
				SchoolName:     r.PostFormValue(model.SettingSchoolName),
				SchoolTagline:  r.PostFormValue(model.SettingSchoolTagline),
				PrimaryColor:   r.PostFormValue(model.SettingPrimaryColor),
				DefaultMode:    r.PostFormValue(model.SettingDefaultMode),
				ContactPhone:   r.PostFormValue(model.SettingContactPhone),
				ContactEmail:   r.PostFormValue(model.SettingContactEmail),
				ContactAddress: r.PostFormValue(model.SettingContactAddress),
			}

			saved, err := h.services.Settings.Save(r.Context(), in)
			if verrs, ok := service.AsValidation(err); ok {
				data := h.adminData(r, "Site Settings", "settings", SettingsData{Form: saved})
				h.render(w, r, http.StatusUnprocessableEntity, tmplSettings, withErrors(data, verrs))
				return
			}
			if err != nil {
				h.failMutation(w, r, RouteSettings, "save the settings", err)
				return
			}

			h.audit(r, h.services.Events.LogSettingsEvent, model.EventLevelInfo, "Settings updated",
				map[string]any{"school_name": saved.SchoolName, "mode": saved.DefaultMode})
			h.flashSuccess(w, r, RouteSettings, MsgSettingsSaved)
		},
	})
}
