// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug generation, safe path handling and small
// request helpers shared across packages.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches runs of characters that are not allowed in a slug
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	// slugPattern is the accepted custom page slug format
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	// sectionKeyPattern is the accepted section key format
	sectionKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Slugify converts a string to a URL-friendly slug.
// Accents are stripped, other scripts are transliterated to ASCII, and every
// run of non-alphanumeric characters becomes a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = nonSlugChars.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is a valid custom page slug.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// IsValidSectionKey reports whether s is a valid section key.
func IsValidSectionKey(s string) bool {
	return sectionKeyPattern.MatchString(s)
}

// Truncate shortens s to at most width runes, ending with "..." when cut.
func Truncate(s string, width int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= width {
		return string(r)
	}
	if width <= 3 {
		return string(r[:width])
	}
	return strings.TrimSpace(string(r[:width-3])) + "..."
}
