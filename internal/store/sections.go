// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const sectionColumns = `id, page_slug, section_key, title, content, image_path, is_enabled, sort_order, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (PageSection, error) {
	var s PageSection
	err := row.Scan(&s.ID, &s.PageSlug, &s.SectionKey, &s.Title, &s.Content, &s.ImagePath,
		&s.IsEnabled, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const listSectionsByPage = `SELECT ` + sectionColumns + ` FROM page_sections
WHERE page_slug = ?
ORDER BY sort_order ASC, id ASC`

// ListSectionsByPage returns every section of a page, enabled or not.
func (q *Queries) ListSectionsByPage(ctx context.Context, pageSlug string) ([]PageSection, error) {
	rows, err := q.db.QueryContext(ctx, listSectionsByPage, pageSlug)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []PageSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const getSection = `SELECT ` + sectionColumns + ` FROM page_sections WHERE id = ? LIMIT 1`

func (q *Queries) GetSection(ctx context.Context, id int64) (PageSection, error) {
	return scanSection(q.db.QueryRowContext(ctx, getSection, id))
}

const countSections = `SELECT COUNT(*) FROM page_sections`

func (q *Queries) CountSections(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSections).Scan(&n)
	return n, err
}

type SectionParams struct {
	PageSlug   string
	SectionKey string
	Title      string
	Content    string
	ImagePath  sql.NullString
	IsEnabled  bool
	SortOrder  int64
	At         time.Time
}

const createSection = `INSERT INTO page_sections
(page_slug, section_key, title, content, image_path, is_enabled, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + sectionColumns

func (q *Queries) CreateSection(ctx context.Context, arg SectionParams) (PageSection, error) {
	return scanSection(q.db.QueryRowContext(ctx, createSection,
		arg.PageSlug, arg.SectionKey, arg.Title, arg.Content, arg.ImagePath,
		boolToInt(arg.IsEnabled), arg.SortOrder, arg.At, arg.At))
}

const updateSection = `UPDATE page_sections
SET page_slug = ?, section_key = ?, title = ?, content = ?, image_path = ?, is_enabled = ?, sort_order = ?, updated_at = ?
WHERE id = ?`

func (q *Queries) UpdateSection(ctx context.Context, id int64, arg SectionParams) error {
	_, err := q.db.ExecContext(ctx, updateSection,
		arg.PageSlug, arg.SectionKey, arg.Title, arg.Content, arg.ImagePath,
		boolToInt(arg.IsEnabled), arg.SortOrder, arg.At, id)
	return err
}

const setSectionEnabled = `UPDATE page_sections SET is_enabled = ?, updated_at = ? WHERE id = ?`

func (q *Queries) SetSectionEnabled(ctx context.Context, id int64, enabled bool, at time.Time) error {
	_, err := q.db.ExecContext(ctx, setSectionEnabled, boolToInt(enabled), at, id)
	return err
}

const deleteSection = `DELETE FROM page_sections WHERE id = ?`

func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSection, id)
	return err
}
