// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const customPageColumns = `id, title, slug, excerpt, content, hero_image, is_enabled, sort_order, created_at, updated_at`

func scanCustomPage(row interface{ Scan(...any) error }) (CustomPage, error) {
	var p CustomPage
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.HeroImage,
		&p.IsEnabled, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const listCustomPages = `SELECT ` + customPageColumns + ` FROM custom_pages ORDER BY sort_order ASC, id ASC`

func (q *Queries) ListCustomPages(ctx context.Context) ([]CustomPage, error) {
	rows, err := q.db.QueryContext(ctx, listCustomPages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []CustomPage
	for rows.Next() {
		p, err := scanCustomPage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getCustomPageByID = `SELECT ` + customPageColumns + ` FROM custom_pages WHERE id = ? LIMIT 1`

func (q *Queries) GetCustomPageByID(ctx context.Context, id int64) (CustomPage, error) {
	return scanCustomPage(q.db.QueryRowContext(ctx, getCustomPageByID, id))
}

const getCustomPageBySlug = `SELECT ` + customPageColumns + ` FROM custom_pages WHERE slug = ? LIMIT 1`

func (q *Queries) GetCustomPageBySlug(ctx context.Context, slug string) (CustomPage, error) {
	return scanCustomPage(q.db.QueryRowContext(ctx, getCustomPageBySlug, slug))
}

const slugTakenByOther = `SELECT COUNT(*) FROM custom_pages WHERE slug = ? AND id <> ?`

// CountCustomPageSlug counts pages other than excludeID that use slug.
func (q *Queries) CountCustomPageSlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, slugTakenByOther, slug, excludeID).Scan(&n)
	return n, err
}

type CustomPageParams struct {
	Title     string
	Slug      string
	Excerpt   sql.NullString
	Content   string
	HeroImage sql.NullString
	IsEnabled bool
	SortOrder int64
	At        time.Time
}

const createCustomPage = `INSERT INTO custom_pages
(title, slug, excerpt, content, hero_image, is_enabled, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + customPageColumns

func (q *Queries) CreateCustomPage(ctx context.Context, arg CustomPageParams) (CustomPage, error) {
	return scanCustomPage(q.db.QueryRowContext(ctx, createCustomPage,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.HeroImage,
		boolToInt(arg.IsEnabled), arg.SortOrder, arg.At, arg.At))
}

const updateCustomPage = `UPDATE custom_pages
SET title = ?, slug = ?, excerpt = ?, content = ?, hero_image = ?, is_enabled = ?, sort_order = ?, updated_at = ?
WHERE id = ?`

func (q *Queries) UpdateCustomPage(ctx context.Context, id int64, arg CustomPageParams) error {
	_, err := q.db.ExecContext(ctx, updateCustomPage,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.HeroImage,
		boolToInt(arg.IsEnabled), arg.SortOrder, arg.At, id)
	return err
}

const setCustomPageEnabled = `UPDATE custom_pages SET is_enabled = ?, updated_at = ? WHERE id = ?`

func (q *Queries) SetCustomPageEnabled(ctx context.Context, id int64, enabled bool, at time.Time) error {
	_, err := q.db.ExecContext(ctx, setCustomPageEnabled, boolToInt(enabled), at, id)
	return err
}

const deleteCustomPage = `DELETE FROM custom_pages WHERE id = ?`

func (q *Queries) DeleteCustomPage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCustomPage, id)
	return err
}
