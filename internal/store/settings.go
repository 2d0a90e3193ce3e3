// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const getSetting = `SELECT setting_value FROM site_settings WHERE setting_key = ? LIMIT 1`

func (q *Queries) GetSetting(ctx context.Context, key string) (string, error) {
	var v string
	err := q.db.QueryRowContext(ctx, getSetting, key).Scan(&v)
	return v, err
}

const listSettings = `SELECT setting_key, setting_value, updated_at FROM site_settings ORDER BY setting_key`

func (q *Queries) ListSettings(ctx context.Context) ([]SiteSetting, error) {
	rows, err := q.db.QueryContext(ctx, listSettings)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []SiteSetting
	for rows.Next() {
		var s SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const upsertSetting = `INSERT INTO site_settings (setting_key, setting_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`

func (q *Queries) UpsertSetting(ctx context.Context, key, value string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertSetting, key, value, at)
	return err
}

const insertSettingIfMissing = `INSERT OR IGNORE INTO site_settings (setting_key, setting_value, updated_at) VALUES (?, ?, ?)`

func (q *Queries) InsertSettingIfMissing(ctx context.Context, key, value string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, insertSettingIfMissing, key, value, at)
	return err
}
