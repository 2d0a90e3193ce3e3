// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package legacy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// Reader reads the legacy school_cms tables.
type Reader struct {
	db *sql.DB
}

// NewReader connects to the legacy MySQL database. parseTime is forced on
// so DATETIME and TIMESTAMP columns scan into time values.
func NewReader(ctx context.Context, dsn string) (*Reader, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating MySQL connector: %w", err)
	}
	db := sql.OpenDB(connector)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Reader{db: db}, nil
}

// NewReaderFromDB wraps an open connection to a database with the legacy
// table layout.
func NewReaderFromDB(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// Close closes the database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Settings returns every setting_key/setting_value pair.
func (r *Reader) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query site_settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	settings := make(map[string]string)
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value.String
	}
	return settings, rows.Err()
}

// Admins returns all admin accounts.
func (r *Reader) Admins(ctx context.Context) ([]Admin, error) {
	return queryAll(ctx, r.db, "admins",
		`SELECT id, name, email, password_hash, created_at FROM admins ORDER BY id`,
		func(rows *sql.Rows) (Admin, error) {
			var a Admin
			err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
			return a, err
		})
}

// Sections returns all page sections.
func (r *Reader) Sections(ctx context.Context) ([]Section, error) {
	return queryAll(ctx, r.db, "page_sections",
		`SELECT id, page_slug, section_key, title, content, image_path, is_enabled, sort_order, created_at, updated_at
		FROM page_sections ORDER BY id`,
		func(rows *sql.Rows) (Section, error) {
			var s Section
			err := rows.Scan(&s.ID, &s.PageSlug, &s.SectionKey, &s.Title, &s.Content, &s.ImagePath,
				&s.IsEnabled, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
			return s, err
		})
}

// GalleryImages returns all gallery images.
func (r *Reader) GalleryImages(ctx context.Context) ([]GalleryImage, error) {
	return queryAll(ctx, r.db, "gallery_images",
		`SELECT id, title, image_path, is_active, uploaded_at FROM gallery_images ORDER BY id`,
		func(rows *sql.Rows) (GalleryImage, error) {
			var g GalleryImage
			err := rows.Scan(&g.ID, &g.Title, &g.ImagePath, &g.IsActive, &g.UploadedAt)
			return g, err
		})
}

// Banners returns all home banners.
func (r *Reader) Banners(ctx context.Context) ([]Banner, error) {
	return queryAll(ctx, r.db, "home_banners",
		`SELECT id, title, subtitle, image_path, is_active, sort_order, created_at FROM home_banners ORDER BY id`,
		func(rows *sql.Rows) (Banner, error) {
			var b Banner
			err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImagePath, &b.IsActive, &b.SortOrder, &b.CreatedAt)
			return b, err
		})
}

// CustomPages returns all custom pages.
func (r *Reader) CustomPages(ctx context.Context) ([]CustomPage, error) {
	return queryAll(ctx, r.db, "custom_pages",
		`SELECT id, title, slug, excerpt, content, hero_image, is_enabled, sort_order, created_at, updated_at
		FROM custom_pages ORDER BY id`,
		func(rows *sql.Rows) (CustomPage, error) {
			var p CustomPage
			err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.HeroImage,
				&p.IsEnabled, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
			return p, err
		})
}

// MenuItems returns all menu items.
func (r *Reader) MenuItems(ctx context.Context) ([]MenuItem, error) {
	return queryAll(ctx, r.db, "menu_items",
		`SELECT id, parent_id, label, item_type, link_value, page_id, icon_class, open_in_new_tab, is_enabled, sort_order, created_at
		FROM menu_items ORDER BY id`,
		func(rows *sql.Rows) (MenuItem, error) {
			var m MenuItem
			err := rows.Scan(&m.ID, &m.ParentID, &m.Label, &m.ItemType, &m.LinkValue, &m.PageID,
				&m.IconClass, &m.OpenInNewTab, &m.IsEnabled, &m.SortOrder, &m.CreatedAt)
			return m, err
		})
}

// Inquiries returns all admission inquiries.
func (r *Reader) Inquiries(ctx context.Context) ([]Inquiry, error) {
	return queryAll(ctx, r.db, "admission_inquiries",
		`SELECT id, student_name, parent_name, class_applying, mobile, email, address, message, status, created_at
		FROM admission_inquiries ORDER BY id`,
		func(rows *sql.Rows) (Inquiry, error) {
			var i Inquiry
			err := rows.Scan(&i.ID, &i.StudentName, &i.ParentName, &i.ClassApplying, &i.Mobile, &i.Email,
				&i.Address, &i.Message, &i.Status, &i.CreatedAt)
			return i, err
		})
}

// ContactMessages returns all contact messages.
func (r *Reader) ContactMessages(ctx context.Context) ([]ContactMessage, error) {
	return queryAll(ctx, r.db, "contact_messages",
		`SELECT id, name, email, message, created_at FROM contact_messages ORDER BY id`,
		func(rows *sql.Rows) (ContactMessage, error) {
			var m ContactMessage
			err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
			return m, err
		})
}

func queryAll[T any](ctx context.Context, db *sql.DB, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return out, nil
}
