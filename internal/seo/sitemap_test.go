// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder_Locations(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		add     func(b *SitemapBuilder)
		want    string
	}{
		{"homepage", "https://school.example", (*SitemapBuilder).AddHomepage, "https://school.example/"},
		{"homepage trailing slash", "https://school.example/", (*SitemapBuilder).AddHomepage, "https://school.example/"},
		{"homepage base path", "https://example.org/school", (*SitemapBuilder).AddHomepage, "https://example.org/school/"},
		{"static page", "https://school.example", func(b *SitemapBuilder) { b.AddStaticPage("about") }, "https://school.example/about"},
		{"custom page", "https://example.org/school", func(b *SitemapBuilder) {
			b.AddPage(SitemapPage{Path: "page/school-transport"})
		}, "https://example.org/school/page/school-transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewSitemapBuilder(tt.siteURL)
			tt.add(b)
			if b.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", b.Len())
			}
			if got := b.urls[0].Loc; got != tt.want {
				t.Errorf("Loc = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSitemapBuilder_AddPage(t *testing.T) {
	b := NewSitemapBuilder("https://school.example")
	b.AddPage(SitemapPage{
		Path:      "page/uniforms",
		UpdatedAt: time.Date(2026, 2, 10, 8, 0, 0, 0, time.FixedZone("IST", 19800)),
	})
	b.AddPage(SitemapPage{Path: "page/fees"})

	if got := b.urls[0].LastMod; got != "2026-02-10T02:30:00Z" {
		t.Errorf("LastMod = %q, want %q", got, "2026-02-10T02:30:00Z")
	}
	if got := b.urls[0].ChangeFreq; got != ChangeFreqWeekly {
		t.Errorf("ChangeFreq = %q, want %q", got, ChangeFreqWeekly)
	}
	if got := b.urls[1].LastMod; got != "" {
		t.Errorf("LastMod without a date = %q, want empty", got)
	}
}

func TestSitemapBuilder_Build(t *testing.T) {
	b := NewSitemapBuilder("https://school.example")
	b.AddHomepage()
	b.AddStaticPage("gallery")
	b.AddPage(SitemapPage{Path: "page/a&b"})

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	body := string(out)

	if !strings.HasPrefix(body, xml.Header) {
		t.Error("Build() should start with the XML header")
	}
	if !strings.Contains(body, `<urlset xmlns="`+XMLNamespace+`">`) {
		t.Error("Build() should declare the sitemap namespace")
	}
	if !strings.Contains(body, "page/a&amp;b") {
		t.Error("Build() should escape locations")
	}

	var parsed Sitemap
	if err := xml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("xml.Unmarshal() error = %v", err)
	}
	if len(parsed.URLs) != 3 {
		t.Errorf("parsed %d URLs, want 3", len(parsed.URLs))
	}
}

func TestSitemapBuilder_BuildEmpty(t *testing.T) {
	out, err := NewSitemapBuilder("https://school.example").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(string(out), "<url>") {
		t.Error("empty sitemap should have no url entries")
	}
}
