// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/school-cms-go/internal/model"
)

func settingsValues() url.Values {
	return url.Values{
		"action":                    {"save"},
		model.SettingSchoolName:     {"  Riverside Academy  "},
		model.SettingSchoolTagline:  {"Learning by the river"},
		model.SettingPrimaryColor:   {"#1A7F37"},
		model.SettingDefaultMode:    {"dark"},
		model.SettingContactPhone:   {"+1 555 0199"},
		model.SettingContactEmail:   {"hello@riverside.edu"},
		model.SettingContactAddress: {"1 River Road"},
	}
}

func TestSettings(t *testing.T) {
	site := newTestSite(t, "")
	site.signIn()

	resp, body := site.get(RouteSettings)
	assertStatus(t, resp, http.StatusOK)
	assertContains(t, body, "page:"+tmplSettings+"|")

	resp, _ = site.post(RouteSettings, settingsValues())
	assertLocation(t, resp, RouteSettings)
	assertContains(t, site.follow(resp), "flash:success:"+MsgSettingsSaved)

	got, err := site.services.Settings.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Riverside Academy", got.SchoolName)
	assert.Equal(t, "#1A7F37", got.PrimaryColor)
	assert.True(t, got.IsDark())
	assert.Equal(t, "hello@riverside.edu", got.ContactEmail)
}

func TestSettings_Validation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"empty name", model.SettingSchoolName, " ", "School name is required."},
		{"short color", model.SettingPrimaryColor, "#fff", "Primary color must be a valid HEX color."},
		{"named color", model.SettingPrimaryColor, "green", "Primary color must be a valid HEX color."},
		{"unknown mode", model.SettingDefaultMode, "sepia", "Default mode must be light or dark."},
		{"bad email", model.SettingContactEmail, "office-at-school", "Contact email is invalid."},
	}

	site := newTestSite(t, "")
	site.signIn()
	before, err := site.services.Settings.Load(t.Context())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := settingsValues()
			form.Set(tt.field, tt.value)

			resp, body := site.post(RouteSettings, form)
			assertStatus(t, resp, http.StatusUnprocessableEntity)
			assertContains(t, body, "page:"+tmplSettings+"|", "err:"+tt.want+"|")
		})
	}

	// Nothing is written when any field is rejected.
	after, err := site.services.Settings.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
