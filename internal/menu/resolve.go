// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import (
	"regexp"
	"strings"

	"github.com/olegiv/school-cms-go/internal/model"
)

// Placeholder is the href of items that lead nowhere.
const Placeholder = "#"

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// IsAbsoluteURL reports whether s starts with http:// or https://.
func IsAbsoluteURL(s string) bool {
	return absoluteURL.MatchString(s)
}

// URL joins a site-relative path onto the base path. An empty path yields
// the site root with a trailing slash.
func URL(basePath, path string) string {
	clean := strings.TrimLeft(path, "/")
	if clean == "" {
		return basePath + "/"
	}
	return basePath + "/" + clean
}

// PageRef is what the resolver needs to know about a custom page.
type PageRef struct {
	Slug    string
	Enabled bool
}

// Resolver computes hrefs for menu items.
type Resolver struct {
	BasePath string
	Pages    map[int64]PageRef
}

// NewResolver returns a Resolver for the given base path and custom pages.
func NewResolver(basePath string, pages map[int64]PageRef) *Resolver {
	if pages == nil {
		pages = map[int64]PageRef{}
	}
	return &Resolver{BasePath: basePath, Pages: pages}
}

// Href returns the link target of it. It has no side effects and depends
// only on it, the base path and the page table.
func (r *Resolver) Href(it Item) string {
	switch it.Type {
	case model.MenuTypeExternal:
		if it.LinkValue == "" {
			return Placeholder
		}
		return it.LinkValue
	case model.MenuTypeCustomPage:
		page, ok := r.Pages[it.PageID]
		if it.PageID == 0 || !ok || !page.Enabled {
			return Placeholder
		}
		return URL(r.BasePath, model.CustomPagePath(page.Slug))
	case model.MenuTypeCustomPath:
		if it.LinkValue == "" || it.LinkValue == Placeholder {
			return Placeholder
		}
		if IsAbsoluteURL(it.LinkValue) {
			return it.LinkValue
		}
		return URL(r.BasePath, it.LinkValue)
	default:
		return URL(r.BasePath, StaticPage(it.LinkValue).Path)
	}
}

// StaticPage returns the whitelist entry for id, falling back to home.
func StaticPage(id string) model.StaticPage {
	if p, ok := model.LookupStaticPage(id); ok {
		return p
	}
	home, _ := model.LookupStaticPage(model.PageHome)
	return home
}
