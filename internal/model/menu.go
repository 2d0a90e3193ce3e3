// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Menu item types.
const (
	MenuTypeStatic     = "static"
	MenuTypeCustomPage = "custom_page"
	MenuTypeCustomPath = "custom_path"
	MenuTypeExternal   = "external"
)

// MenuTypeLabels maps each menu item type to its admin label, in display order.
var MenuTypeLabels = []Option{
	{Value: MenuTypeStatic, Label: "Static Page"},
	{Value: MenuTypeCustomPage, Label: "Custom Page"},
	{Value: MenuTypeCustomPath, Label: "Custom Relative Path"},
	{Value: MenuTypeExternal, Label: "External URL"},
}

// IsValidMenuType reports whether t is one of the four menu item types.
func IsValidMenuType(t string) bool {
	switch t {
	case MenuTypeStatic, MenuTypeCustomPage, MenuTypeCustomPath, MenuTypeExternal:
		return true
	}
	return false
}

// DefaultMenuIcon is stored when the admin leaves the icon blank.
const DefaultMenuIcon = "fa-solid fa-link"

// Built-in page identifiers. These are the only values a static menu item may link to.
const (
	PageHome           = "home"
	PageAbout          = "about"
	PageFacilities     = "facilities"
	PageInfrastructure = "infrastructure"
	PageGallery        = "gallery"
	PageAdmission      = "admission-inquiry"
	PageContact        = "contact"

	// PageCustom identifies the generic custom-page viewer.
	PageCustom = "custom-page"
)

// StaticPage is one entry of the static page whitelist.
type StaticPage struct {
	ID    string
	Label string
	Path  string // path relative to the site base
}

// StaticPages is the static menu whitelist in display order.
var StaticPages = []StaticPage{
	{ID: PageHome, Label: "Home", Path: ""},
	{ID: PageAbout, Label: "About", Path: "about"},
	{ID: PageFacilities, Label: "Facilities", Path: "facilities"},
	{ID: PageInfrastructure, Label: "Infrastructure", Path: "infrastructure"},
	{ID: PageGallery, Label: "Gallery", Path: "gallery"},
	{ID: PageAdmission, Label: "Admission Inquiry", Path: "admission"},
	{ID: PageContact, Label: "Contact", Path: "contact"},
}

// LookupStaticPage returns the whitelist entry for id.
func LookupStaticPage(id string) (StaticPage, bool) {
	for _, p := range StaticPages {
		if p.ID == id {
			return p, true
		}
	}
	return StaticPage{}, false
}

// CustomPagePath returns the site-relative path of the custom page viewer for slug.
func CustomPagePath(slug string) string {
	return "page/" + slug
}
