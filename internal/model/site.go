// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the domain constants shared by the store, services and handlers.
package model

// Option is a value/label pair for select inputs.
type Option struct {
	Value string
	Label string
}

// Setting keys.
const (
	SettingSchoolName     = "school_name"
	SettingSchoolTagline  = "school_tagline"
	SettingPrimaryColor   = "primary_color"
	SettingDefaultMode    = "default_mode"
	SettingContactPhone   = "contact_phone"
	SettingContactEmail   = "contact_email"
	SettingContactAddress = "contact_address"
)

// SettingDefaults holds the fallback value of every setting key.
var SettingDefaults = map[string]string{
	SettingSchoolName:     "Greenfield Public School",
	SettingSchoolTagline:  "Inspiring minds. Building character.",
	SettingPrimaryColor:   "#0b6efd",
	SettingDefaultMode:    "light",
	SettingContactPhone:   "+1 000-000-0000",
	SettingContactEmail:   "info@school.edu",
	SettingContactAddress: "School Campus Address",
}

// SettingKeys lists setting keys in form order.
var SettingKeys = []string{
	SettingSchoolName,
	SettingSchoolTagline,
	SettingPrimaryColor,
	SettingDefaultMode,
	SettingContactPhone,
	SettingContactEmail,
	SettingContactAddress,
}

// Theme modes.
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// CMSPages are the built-in pages whose content is made of sections, in admin order.
var CMSPages = []Option{
	{Value: PageHome, Label: "Home"},
	{Value: PageAbout, Label: "About the School"},
	{Value: PageFacilities, Label: "Facilities"},
	{Value: PageInfrastructure, Label: "Infrastructure"},
}

// CMSPageLabel returns the label of a section page and whether the slug is known.
func CMSPageLabel(slug string) (string, bool) {
	for _, p := range CMSPages {
		if p.Value == slug {
			return p.Label, true
		}
	}
	return "", false
}

// Upload directories, relative to the uploads root.
const (
	UploadDirGallery = "gallery"
	UploadDirBanners = "banners"
)
