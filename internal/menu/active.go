// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import (
	"strings"

	"github.com/olegiv/school-cms-go/internal/model"
)

// Current describes the page being served.
type Current struct {
	Page string // built-in page id, or model.PageCustom for the custom-page viewer
	Slug string // requested slug when Page is model.PageCustom
	Path string // request path as seen by the browser, base path included
}

// Matches reports whether it, on its own, points at the current page.
func (r *Resolver) Matches(it Item, cur Current) bool {
	switch it.Type {
	case model.MenuTypeStatic:
		return cur.Page != "" && cur.Page == StaticPage(it.LinkValue).ID
	case model.MenuTypeCustomPage:
		if cur.Page != model.PageCustom || it.PageID == 0 {
			return false
		}
		page, ok := r.Pages[it.PageID]
		return ok && page.Slug == cur.Slug
	case model.MenuTypeCustomPath:
		if it.LinkValue == "" || it.LinkValue == Placeholder || IsAbsoluteURL(it.LinkValue) {
			return false
		}
		return normalizePath(r.Href(it)) == normalizePath(cur.Path)
	default:
		return false
	}
}

// Decorate fills Href and Active on every node. A node is active when it
// matches the current page or any of its descendants does.
// It returns whether any node in nodes is active.
func (r *Resolver) Decorate(nodes []*Node, cur Current) bool {
	found := false
	for _, n := range nodes {
		childActive := r.Decorate(n.Children, cur)
		n.Href = r.Href(n.Item)
		n.Active = childActive || r.Matches(n.Item, cur)
		if n.Active {
			found = true
		}
	}
	return found
}

func normalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.TrimRight(p, "/")
}
