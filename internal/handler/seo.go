// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/seo"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	base
	noIndex bool
}

// NewSEOHandler creates a new SEOHandler.
func NewSEOHandler(cfg Config) *SEOHandler {
	return &SEOHandler{base: newBase(cfg), noIndex: cfg.NoIndex}
}

// siteURL is the absolute URL of the site root for r, including the base path.
func (h *SEOHandler) siteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + h.basePath
}

// Sitemap lists the static pages and every published custom page.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.siteURL(r))
	for _, p := range model.StaticPages {
		if p.ID == model.PageHome {
			b.AddHomepage()
			continue
		}
		b.AddStaticPage(p.Path)
	}

	pages, err := h.services.CustomPages.List(r.Context())
	if err != nil {
		slog.Error("failed to list custom pages for sitemap", "error", err)
	}
	for _, p := range pages {
		if p.IsEnabled {
			b.AddPage(seo.SitemapPage{Path: model.CustomPagePath(p.Slug), UpdatedAt: p.UpdatedAt})
		}
	}

	out, err := b.Build()
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots serves robots.txt. Crawlers are turned away entirely when noIndex is set.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.siteURL(r),
		BasePath:    h.basePath,
		DisallowAll: h.noIndex,
	}).Build()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}
