// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/school-cms-go/internal/model"
)

// Seed writes the default site settings that are not yet present.
// Existing values are never overwritten. The first admin is created through
// the setup screen, not here.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := New(tx)
	now := time.Now().UTC()
	for _, key := range model.SettingKeys {
		if err := queries.InsertSettingIfMissing(ctx, key, model.SettingDefaults[key], now); err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("default settings ensured", "count", len(model.SettingKeys))
	return nil
}
