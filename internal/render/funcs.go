// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/menu"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/util"
)

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006 15:04"
)

// adminLink is one entry of the admin sidebar. Path is relative to /admin.
type adminLink struct {
	Value string
	Label string
	Path  string
}

var adminLinks = []adminLink{
	{"dashboard", "Dashboard", ""},
	{"sections", "Page Content", "/sections"},
	{"custom_pages", "Custom Pages", "/custom-pages"},
	{"menu", "Menu Builder", "/menu"},
	{"banners", "Home Banners", "/banners"},
	{"gallery", "Gallery", "/gallery"},
	{"inquiries", "Inquiries", "/inquiries"},
	{"messages", "Messages", "/messages"},
	{"settings", "Settings", "/settings"},
}

func optionLabel(options []model.Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// templateFuncs returns the functions available to every template.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Links
		"url": func(path string) string {
			return menu.URL(r.basePath, path)
		},
		"asset": func(path string) string {
			return menu.URL(r.basePath, "static/"+strings.TrimLeft(path, "/"))
		},
		"image": func(stored string) string {
			if stored == "" {
				return ""
			}
			return menu.URL(r.basePath, util.CleanStoredPath(stored))
		},

		"adminLinks": func() []adminLink {
			return adminLinks
		},

		// Text
		"content":  Content,
		"truncate": util.Truncate,
		"lower":    strings.ToLower,
		"upper":    strings.ToUpper,

		// Time
		"formatDate": func(t time.Time) string {
			return t.Local().Format(dateLayout)
		},
		"formatDateTime": func(t time.Time) string {
			return t.Local().Format(dateTimeLayout)
		},

		// Labels
		"statusLabel": func(s string) string {
			return optionLabel(model.InquiryStatuses, s)
		},
		"menuTypeLabel": func(s string) string {
			return optionLabel(model.MenuTypeLabels, s)
		},
		"pageLabel": func(s string) string {
			return optionLabel(model.CMSPages, s)
		},

		// Math
		"add": func(a, b int) int {
			return a + b
		},
		"mod": func(a, b int) int {
			return a % b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		"indent": func(level int) string {
			return strings.Repeat("-- ", level)
		},

		// Data structures
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}
