// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"net/url"
	"strings"

	"github.com/olegiv/school-cms-go/internal/model"
)

// staticPageForScript returns the page identifier served by a legacy
// script name such as "index.php" or "about.php".
func staticPageForScript(script string) (string, bool) {
	script = strings.TrimLeft(strings.TrimSpace(script), "/")
	name, ok := strings.CutSuffix(script, ".php")
	if !ok {
		return "", false
	}
	if name == "index" {
		name = ""
	}
	for _, p := range model.StaticPages {
		if p.Path == name {
			return p.ID, true
		}
	}
	return "", false
}

// mapLink converts a legacy menu link to the current item type and link
// value. Static links and relative paths that name a built-in script become
// static page identifiers; "page.php?slug=x" becomes the custom page path.
// Unknown static links fall back to a relative path so nothing is lost.
func mapLink(itemType, value string) (string, string) {
	value = strings.TrimSpace(value)

	switch itemType {
	case model.MenuTypeStatic, model.MenuTypeCustomPath:
		if id, ok := staticPageForScript(value); ok {
			return model.MenuTypeStatic, id
		}
		if slug, ok := customPageSlug(value); ok {
			return model.MenuTypeCustomPath, model.CustomPagePath(slug)
		}
		if itemType == model.MenuTypeStatic {
			if _, ok := model.LookupStaticPage(value); ok {
				return model.MenuTypeStatic, value
			}
			if value == "" {
				return model.MenuTypeStatic, model.PageHome
			}
		}
		return model.MenuTypeCustomPath, strings.TrimLeft(value, "/")
	case model.MenuTypeCustomPage, model.MenuTypeExternal:
		return itemType, value
	}
	return model.MenuTypeCustomPath, strings.TrimLeft(value, "/")
}

func customPageSlug(value string) (string, bool) {
	u, err := url.Parse(strings.TrimLeft(value, "/"))
	if err != nil || u.Path != "page.php" {
		return "", false
	}
	slug := u.Query().Get("slug")
	return slug, slug != ""
}
