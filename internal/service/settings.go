// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Settings is the typed view of the site_settings table.
type Settings struct {
	SchoolName     string `form:"school_name" validate:"required"`
	SchoolTagline  string `form:"school_tagline"`
	PrimaryColor   string `form:"primary_color" validate:"hexcolor6"`
	DefaultMode    string `form:"default_mode" validate:"oneof=light dark"`
	ContactPhone   string `form:"contact_phone"`
	ContactEmail   string `form:"contact_email" validate:"required,email"`
	ContactAddress string `form:"contact_address"`
}

var settingsMessages = map[string]string{
	model.SettingSchoolName:   "School name is required.",
	model.SettingPrimaryColor: "Primary color must be a valid HEX color.",
	model.SettingDefaultMode:  "Default mode must be light or dark.",
	model.SettingContactEmail: "Contact email is invalid.",
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return SettingsFromMap(model.SettingDefaults)
}

// SettingsFromMap builds Settings from key/value pairs. Missing keys take
// their default value.
func SettingsFromMap(m map[string]string) Settings {
	get := func(key string) string {
		if v, ok := m[key]; ok {
			return v
		}
		return model.SettingDefaults[key]
	}
	return Settings{
		SchoolName:     get(model.SettingSchoolName),
		SchoolTagline:  get(model.SettingSchoolTagline),
		PrimaryColor:   get(model.SettingPrimaryColor),
		DefaultMode:    get(model.SettingDefaultMode),
		ContactPhone:   get(model.SettingContactPhone),
		ContactEmail:   get(model.SettingContactEmail),
		ContactAddress: get(model.SettingContactAddress),
	}
}

// Values returns the settings keyed by setting key.
func (s Settings) Values() map[string]string {
	return map[string]string{
		model.SettingSchoolName:     s.SchoolName,
		model.SettingSchoolTagline:  s.SchoolTagline,
		model.SettingPrimaryColor:   s.PrimaryColor,
		model.SettingDefaultMode:    s.DefaultMode,
		model.SettingContactPhone:   s.ContactPhone,
		model.SettingContactEmail:   s.ContactEmail,
		model.SettingContactAddress: s.ContactAddress,
	}
}

// IsDark reports whether the site opens in dark mode.
func (s Settings) IsDark() bool {
	return s.DefaultMode == model.ModeDark
}

// Validate checks the admin settings form.
func (s Settings) Validate() ValidationErrors {
	return checkStruct(s, settingsMessages)
}

func (s Settings) trimmed() Settings {
	return Settings{
		SchoolName:     strings.TrimSpace(s.SchoolName),
		SchoolTagline:  strings.TrimSpace(s.SchoolTagline),
		PrimaryColor:   strings.TrimSpace(s.PrimaryColor),
		DefaultMode:    strings.TrimSpace(s.DefaultMode),
		ContactPhone:   strings.TrimSpace(s.ContactPhone),
		ContactEmail:   strings.TrimSpace(s.ContactEmail),
		ContactAddress: strings.TrimSpace(s.ContactAddress),
	}
}

// SettingsService reads and writes site settings.
type SettingsService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{db: db, queries: store.New(db)}
}

// Load returns the stored settings merged over the defaults. On a read
// error the defaults are returned together with the error.
func (s *SettingsService) Load(ctx context.Context) (Settings, error) {
	rows, err := s.queries.ListSettings(ctx)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("loading settings: %w", err)
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[row.Key] = row.Value
	}
	return SettingsFromMap(m), nil
}

// SchoolName returns the configured school name, or the default.
func (s *SettingsService) SchoolName(ctx context.Context) string {
	name, err := s.queries.GetSetting(ctx, model.SettingSchoolName)
	if err != nil || name == "" {
		return model.SettingDefaults[model.SettingSchoolName]
	}
	return name
}

// Save validates in and upserts every key in one transaction. Validation
// failures are returned as ValidationErrors.
func (s *SettingsService) Save(ctx context.Context, in Settings) (Settings, error) {
	in = in.trimmed()
	if verrs := in.Validate(); len(verrs) > 0 {
		return in, verrs
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return in, fmt.Errorf("beginning settings transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := s.queries.WithTx(tx)
	now := time.Now().UTC()
	values := in.Values()
	for _, key := range model.SettingKeys {
		if err := queries.UpsertSetting(ctx, key, values[key], now); err != nil {
			return in, fmt.Errorf("saving setting %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return in, fmt.Errorf("committing settings: %w", err)
	}
	return in, nil
}
