// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"database/sql"
)

// Admin is a row of the legacy admins table. PasswordHash is a PHP
// password_hash() bcrypt string.
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    sql.NullTime
}

// Section is a row of page_sections.
type Section struct {
	ID         int64
	PageSlug   string
	SectionKey string
	Title      string
	Content    string
	ImagePath  sql.NullString
	IsEnabled  bool
	SortOrder  int64
	CreatedAt  sql.NullTime
	UpdatedAt  sql.NullTime
}

// GalleryImage is a row of gallery_images.
type GalleryImage struct {
	ID         int64
	Title      string
	ImagePath  string
	IsActive   bool
	UploadedAt sql.NullTime
}

// Banner is a row of home_banners.
type Banner struct {
	ID        int64
	Title     string
	Subtitle  sql.NullString
	ImagePath string
	IsActive  bool
	SortOrder int64
	CreatedAt sql.NullTime
}

// CustomPage is a row of custom_pages.
type CustomPage struct {
	ID        int64
	Title     string
	Slug      string
	Excerpt   sql.NullString
	Content   string
	HeroImage sql.NullString
	IsEnabled bool
	SortOrder int64
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// MenuItem is a row of menu_items. LinkValue holds script names such as
// "about.php" that the importer maps to page identifiers.
type MenuItem struct {
	ID           int64
	ParentID     sql.NullInt64
	Label        string
	ItemType     string
	LinkValue    sql.NullString
	PageID       sql.NullInt64
	IconClass    sql.NullString
	OpenInNewTab bool
	IsEnabled    bool
	SortOrder    int64
	CreatedAt    sql.NullTime
}

// Inquiry is a row of admission_inquiries.
type Inquiry struct {
	ID            int64
	StudentName   string
	ParentName    string
	ClassApplying string
	Mobile        string
	Email         string
	Address       string
	Message       string
	Status        string
	CreatedAt     sql.NullTime
}

// ContactMessage is a row of contact_messages.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt sql.NullTime
}
