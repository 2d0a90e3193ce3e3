// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const menuItemColumns = `id, parent_id, label, item_type, link_value, page_id, icon_class, open_in_new_tab, is_enabled, sort_order, created_at`

func scanMenuItem(row interface{ Scan(...any) error }) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.ParentID, &m.Label, &m.ItemType, &m.LinkValue, &m.PageID,
		&m.IconClass, &m.OpenInNewTab, &m.IsEnabled, &m.SortOrder, &m.CreatedAt)
	return m, err
}

func (q *Queries) listMenuItems(ctx context.Context, query string) ([]MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listMenuItems = `SELECT ` + menuItemColumns + ` FROM menu_items ORDER BY sort_order ASC, id ASC`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	return q.listMenuItems(ctx, listMenuItems)
}

const listEnabledMenuItems = `SELECT ` + menuItemColumns + ` FROM menu_items
WHERE is_enabled = 1
ORDER BY sort_order ASC, id ASC`

func (q *Queries) ListEnabledMenuItems(ctx context.Context) ([]MenuItem, error) {
	return q.listMenuItems(ctx, listEnabledMenuItems)
}

const getMenuItem = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ? LIMIT 1`

func (q *Queries) GetMenuItem(ctx context.Context, id int64) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, getMenuItem, id))
}

type MenuItemParams struct {
	ParentID     sql.NullInt64
	Label        string
	ItemType     string
	LinkValue    sql.NullString
	PageID       sql.NullInt64
	IconClass    sql.NullString
	OpenInNewTab bool
	IsEnabled    bool
	SortOrder    int64
}

const createMenuItem = `INSERT INTO menu_items
(parent_id, label, item_type, link_value, page_id, icon_class, open_in_new_tab, is_enabled, sort_order, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + menuItemColumns

func (q *Queries) CreateMenuItem(ctx context.Context, arg MenuItemParams, at time.Time) (MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, createMenuItem,
		arg.ParentID, arg.Label, arg.ItemType, arg.LinkValue, arg.PageID, arg.IconClass,
		boolToInt(arg.OpenInNewTab), boolToInt(arg.IsEnabled), arg.SortOrder, at))
}

const updateMenuItem = `UPDATE menu_items
SET parent_id = ?, label = ?, item_type = ?, link_value = ?, page_id = ?, icon_class = ?,
    open_in_new_tab = ?, is_enabled = ?, sort_order = ?
WHERE id = ?`

func (q *Queries) UpdateMenuItem(ctx context.Context, id int64, arg MenuItemParams) error {
	_, err := q.db.ExecContext(ctx, updateMenuItem,
		arg.ParentID, arg.Label, arg.ItemType, arg.LinkValue, arg.PageID, arg.IconClass,
		boolToInt(arg.OpenInNewTab), boolToInt(arg.IsEnabled), arg.SortOrder, id)
	return err
}

const setMenuItemEnabled = `UPDATE menu_items SET is_enabled = ? WHERE id = ?`

func (q *Queries) SetMenuItemEnabled(ctx context.Context, id int64, enabled bool) error {
	_, err := q.db.ExecContext(ctx, setMenuItemEnabled, boolToInt(enabled), id)
	return err
}

const deleteMenuItem = `DELETE FROM menu_items WHERE id = ?`

// DeleteMenuItem removes the item; descendants go with it through ON DELETE CASCADE.
func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMenuItem, id)
	return err
}
