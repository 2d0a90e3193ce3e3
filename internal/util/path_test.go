// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path/filepath"
	"testing"
)

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		parts   []string
		wantErr bool
	}{
		{"plain", []string{"gallery", "a.jpg"}, false},
		{"nested clean", []string{"banners/../gallery/a.jpg"}, false},
		{"escape", []string{"..", "etc", "passwd"}, true},
		{"escape nested", []string{"gallery/../../x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoinPath(base, tt.parts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SafeJoinPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && filepath.Dir(got) == "" {
				t.Errorf("unexpected path %q", got)
			}
		})
	}
}

func TestCleanStoredPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"uploads/gallery/a.jpg", "uploads/gallery/a.jpg"},
		{"/uploads/gallery/a.jpg/", "uploads/gallery/a.jpg"},
		{`uploads\banners\b.png`, "uploads/banners/b.png"},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := CleanStoredPath(tt.in); got != tt.want {
			t.Errorf("CleanStoredPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
