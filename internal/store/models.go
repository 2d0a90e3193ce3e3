// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type Admin struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
}

type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PageSection struct {
	ID         int64          `json:"id"`
	PageSlug   string         `json:"page_slug"`
	SectionKey string         `json:"section_key"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	ImagePath  sql.NullString `json:"image_path"`
	IsEnabled  bool           `json:"is_enabled"`
	SortOrder  int64          `json:"sort_order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type GalleryImage struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	ImagePath  string    `json:"image_path"`
	IsActive   bool      `json:"is_active"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type HomeBanner struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Subtitle  sql.NullString `json:"subtitle"`
	ImagePath string         `json:"image_path"`
	IsActive  bool           `json:"is_active"`
	SortOrder int64          `json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
}

type CustomPage struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Excerpt   sql.NullString `json:"excerpt"`
	Content   string         `json:"content"`
	HeroImage sql.NullString `json:"hero_image"`
	IsEnabled bool           `json:"is_enabled"`
	SortOrder int64          `json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type MenuItem struct {
	ID           int64          `json:"id"`
	ParentID     sql.NullInt64  `json:"parent_id"`
	Label        string         `json:"label"`
	ItemType     string         `json:"item_type"`
	LinkValue    sql.NullString `json:"link_value"`
	PageID       sql.NullInt64  `json:"page_id"`
	IconClass    sql.NullString `json:"icon_class"`
	OpenInNewTab bool           `json:"open_in_new_tab"`
	IsEnabled    bool           `json:"is_enabled"`
	SortOrder    int64          `json:"sort_order"`
	CreatedAt    time.Time      `json:"created_at"`
}

type AdmissionInquiry struct {
	ID            int64     `json:"id"`
	StudentName   string    `json:"student_name"`
	ParentName    string    `json:"parent_name"`
	ClassApplying string    `json:"class_applying"`
	Mobile        string    `json:"mobile"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	IPAddress     string    `json:"ip_address"`
	UserAgent     string    `json:"user_agent"`
	CountryCode   string    `json:"country_code"`
	CreatedAt     time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

type Event struct {
	ID         int64         `json:"id"`
	Level      string        `json:"level"`
	Category   string        `json:"category"`
	Message    string        `json:"message"`
	AdminID    sql.NullInt64 `json:"admin_id"`
	Metadata   string        `json:"metadata"`
	IPAddress  string        `json:"ip_address"`
	RequestURL string        `json:"request_url"`
	CreatedAt  time.Time     `json:"created_at"`
}
