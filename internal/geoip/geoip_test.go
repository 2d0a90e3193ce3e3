// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestLookupCountry_WithoutDatabase(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init(\"\") error = %v", err)
	}
	defer func() { _ = g.Close() }()

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", Local},
		{"::1", Local},
		{"10.1.2.3", Local},
		{"172.20.0.5", Local},
		{"192.168.1.10", Local},
		{"fe80::1", Local},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := g.LookupCountry(tt.ip); got != tt.want {
			t.Errorf("LookupCountry(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
	if g.IsEnabled() {
		t.Error("IsEnabled() = true without a database")
	}
}

func TestInit_MissingFile(t *testing.T) {
	g := NewLookup()
	if err := g.Init(filepath.Join(t.TempDir(), "missing.mmdb")); err == nil {
		t.Error("Init with missing file: want error")
	}
	if g.IsEnabled() {
		t.Error("IsEnabled() = true after failed Init")
	}
	if err := g.Reload(); err == nil {
		t.Error("Reload with missing file: want error")
	}
}

func TestReload_NoPath(t *testing.T) {
	g := NewLookup()
	if err := g.Reload(); err != nil {
		t.Errorf("Reload() without path = %v, want nil", err)
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"", "Unknown"},
		{Local, "Local Network"},
		{"US", "United States"},
		{"DE", "Germany"},
		{"IN", "India"},
		{"??", "??"},
	}

	for _, tt := range tests {
		if got := CountryName(tt.code); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
