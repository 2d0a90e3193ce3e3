// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package legacy imports the content of the original MySQL school_cms
// database into the SQLite store. Row ids are preserved so menu parents,
// custom page links and the uploaded file paths stay valid.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/model"
)

// Options controls an import run.
type Options struct {
	// SkipExisting keeps rows whose id already exists instead of failing.
	SkipExisting bool
}

// Result counts what an import run wrote, per table.
type Result struct {
	Imported map[string]int
	Skipped  map[string]int
}

func newResult() *Result {
	return &Result{Imported: make(map[string]int), Skipped: make(map[string]int)}
}

// TotalImported returns the total number of imported rows.
func (r *Result) TotalImported() int {
	total := 0
	for _, n := range r.Imported {
		total += n
	}
	return total
}

func (r *Result) record(table string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		r.Imported[table]++
	} else {
		r.Skipped[table]++
	}
	return nil
}

// Importer copies legacy rows into the destination database.
type Importer struct {
	reader *Reader
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewImporter creates an importer writing to db.
func NewImporter(reader *Reader, db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{reader: reader, db: db, logger: logger, now: time.Now}
}

// Import reads every legacy table and writes it in one transaction.
// Nothing is written when any table fails.
func (im *Importer) Import(ctx context.Context, opts Options) (*Result, error) {
	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := newResult()
	steps := []struct {
		name string
		run  func(context.Context, *sql.Tx, *Result, Options) error
	}{
		{"site_settings", im.importSettings},
		{"admins", im.importAdmins},
		{"page_sections", im.importSections},
		{"gallery_images", im.importGallery},
		{"home_banners", im.importBanners},
		{"custom_pages", im.importCustomPages},
		{"menu_items", im.importMenuItems},
		{"admission_inquiries", im.importInquiries},
		{"contact_messages", im.importContactMessages},
	}
	for _, step := range steps {
		if err := step.run(ctx, tx, result, opts); err != nil {
			return nil, fmt.Errorf("importing %s: %w", step.name, err)
		}
		im.logger.Info("imported legacy table", "table", step.name,
			"imported", result.Imported[step.name], "skipped", result.Skipped[step.name])
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	return result, nil
}

// insertVerb returns the INSERT form for opts.
func insertVerb(opts Options) string {
	if opts.SkipExisting {
		return "INSERT OR IGNORE"
	}
	return "INSERT"
}

func (im *Importer) timeOr(t sql.NullTime) time.Time {
	if t.Valid && !t.Time.IsZero() {
		return t.Time.UTC()
	}
	return im.now().UTC()
}

func nullIfBlank(s sql.NullString) sql.NullString {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.TrimSpace(s.String), Valid: true}
}

func (im *Importer) importSettings(ctx context.Context, tx *sql.Tx, result *Result, _ Options) error {
	settings, err := im.reader.Settings(ctx)
	if err != nil {
		return err
	}
	for _, key := range model.SettingKeys {
		value, ok := settings[key]
		if !ok {
			continue
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO site_settings (setting_key, setting_value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`,
			key, value, im.now().UTC())
		if err != nil {
			return err
		}
		if err := result.record("site_settings", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importAdmins(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	admins, err := im.reader.Admins(ctx)
	if err != nil {
		return err
	}
	for _, a := range admins {
		// Email is unique as well as id, so OR IGNORE also covers an admin
		// created through setup before the import.
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO admins (id, name, email, password_hash, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			a.ID, a.Name, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, im.timeOr(a.CreatedAt))
		if err != nil {
			return err
		}
		if err := result.record("admins", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importSections(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	sections, err := im.reader.Sections(ctx)
	if err != nil {
		return err
	}
	for _, s := range sections {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO page_sections
			(id, page_slug, section_key, title, content, image_path, is_enabled, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.PageSlug, s.SectionKey, s.Title, s.Content, nullIfBlank(s.ImagePath),
			s.IsEnabled, max(s.SortOrder, 1), im.timeOr(s.CreatedAt), im.timeOr(s.UpdatedAt))
		if err != nil {
			return err
		}
		if err := result.record("page_sections", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importGallery(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	images, err := im.reader.GalleryImages(ctx)
	if err != nil {
		return err
	}
	for _, g := range images {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO gallery_images (id, title, image_path, is_active, uploaded_at)
			VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Title, g.ImagePath, g.IsActive, im.timeOr(g.UploadedAt))
		if err != nil {
			return err
		}
		if err := result.record("gallery_images", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importBanners(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	banners, err := im.reader.Banners(ctx)
	if err != nil {
		return err
	}
	for _, b := range banners {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO home_banners
			(id, title, subtitle, image_path, is_active, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, nullIfBlank(b.Subtitle), b.ImagePath, b.IsActive, max(b.SortOrder, 1), im.timeOr(b.CreatedAt))
		if err != nil {
			return err
		}
		if err := result.record("home_banners", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importCustomPages(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	pages, err := im.reader.CustomPages(ctx)
	if err != nil {
		return err
	}
	for _, p := range pages {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO custom_pages
			(id, title, slug, excerpt, content, hero_image, is_enabled, sort_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Title, p.Slug, nullIfBlank(p.Excerpt), p.Content, nullIfBlank(p.HeroImage),
			p.IsEnabled, max(p.SortOrder, 1), im.timeOr(p.CreatedAt), im.timeOr(p.UpdatedAt))
		if err != nil {
			return err
		}
		if err := result.record("custom_pages", res); err != nil {
			return err
		}
	}
	return nil
}

// importMenuItems inserts every item as top level first, then links
// parents, so a child may precede its parent in id order.
func (im *Importer) importMenuItems(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	items, err := im.reader.MenuItems(ctx)
	if err != nil {
		return err
	}

	ids := make(map[int64]bool, len(items))
	inserted := make(map[int64]bool, len(items))
	for _, m := range items {
		ids[m.ID] = true

		itemType, link := mapLink(m.ItemType, m.LinkValue.String)
		var linkValue sql.NullString
		var pageID sql.NullInt64
		if itemType == model.MenuTypeCustomPage {
			pageID, err = existingPage(ctx, tx, m.PageID)
			if err != nil {
				return err
			}
		} else if link != "" {
			linkValue = sql.NullString{String: link, Valid: true}
		}

		icon := nullIfBlank(m.IconClass)
		if !icon.Valid {
			icon = sql.NullString{String: model.DefaultMenuIcon, Valid: true}
		}

		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO menu_items
			(id, parent_id, label, item_type, link_value, page_id, icon_class, open_in_new_tab, is_enabled, sort_order, created_at)
			VALUES (?, NULL, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Label, itemType, linkValue, pageID, icon, m.OpenInNewTab, m.IsEnabled,
			max(m.SortOrder, 1), im.timeOr(m.CreatedAt))
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted[m.ID] = true
		}
		if err := result.record("menu_items", res); err != nil {
			return err
		}
	}

	for _, m := range items {
		if !inserted[m.ID] || !m.ParentID.Valid || m.ParentID.Int64 <= 0 {
			continue
		}
		if !ids[m.ParentID.Int64] || m.ParentID.Int64 == m.ID {
			im.logger.Warn("legacy menu item has an unknown parent, kept at top level",
				"id", m.ID, "parent_id", m.ParentID.Int64)
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE menu_items SET parent_id = ? WHERE id = ?`, m.ParentID.Int64, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// existingPage returns id when it names a custom page already in the
// destination, and NULL otherwise.
func existingPage(ctx context.Context, tx *sql.Tx, id sql.NullInt64) (sql.NullInt64, error) {
	if !id.Valid || id.Int64 <= 0 {
		return sql.NullInt64{}, nil
	}
	var found int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM custom_pages WHERE id = ?`, id.Int64).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullInt64{}, nil
	}
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: found, Valid: true}, nil
}

func (im *Importer) importInquiries(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	inquiries, err := im.reader.Inquiries(ctx)
	if err != nil {
		return err
	}
	for _, i := range inquiries {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO admission_inquiries
			(id, student_name, parent_name, class_applying, mobile, email, address, message, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.StudentName, i.ParentName, i.ClassApplying, i.Mobile, i.Email, i.Address, i.Message,
			model.NormalizeInquiryStatus(i.Status), im.timeOr(i.CreatedAt))
		if err != nil {
			return err
		}
		if err := result.record("admission_inquiries", res); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) importContactMessages(ctx context.Context, tx *sql.Tx, result *Result, opts Options) error {
	messages, err := im.reader.ContactMessages(ctx)
	if err != nil {
		return err
	}
	for _, m := range messages {
		res, err := tx.ExecContext(ctx, insertVerb(opts)+` INTO contact_messages (id, name, email, message, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Email, m.Message, im.timeOr(m.CreatedAt))
		if err != nil {
			return err
		}
		if err := result.record("contact_messages", res); err != nil {
			return err
		}
	}
	return nil
}
