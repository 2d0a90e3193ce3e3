// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Job names.
const (
	JobEventRetention = "event_retention"
	JobGeoIPReload    = "geoip_reload"
)

// Default schedules.
const (
	EventRetentionSchedule = "15 3 * * *" // nightly at 03:15
	GeoIPReloadSchedule    = "30 4 * * 0" // Sundays at 04:30
)

// EventPruner deletes event log rows older than a cutoff.
type EventPruner interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Reloader re-reads a data file that may have been replaced on disk.
type Reloader interface {
	Reload() error
}

// EventRetentionJob prunes events older than days. A non-positive days
// keeps everything and the job is a no-op.
func EventRetentionJob(events EventPruner, days int, logger *slog.Logger) Job {
	return Job{
		Name:        JobEventRetention,
		Description: fmt.Sprintf("Delete event log entries older than %d days", days),
		Schedule:    EventRetentionSchedule,
		Run: func(ctx context.Context) error {
			if days <= 0 {
				return nil
			}
			n, err := events.DeleteOldEvents(ctx, time.Duration(days)*24*time.Hour)
			if err != nil {
				return fmt.Errorf("pruning events: %w", err)
			}
			if n > 0 {
				logger.Info("pruned old events", "deleted", n, "retention_days", days)
			}
			return nil
		},
	}
}

// GeoIPReloadJob picks up a refreshed GeoLite2 database.
func GeoIPReloadJob(lookup Reloader) Job {
	return Job{
		Name:        JobGeoIPReload,
		Description: "Reload the GeoIP country database",
		Schedule:    GeoIPReloadSchedule,
		Run: func(context.Context) error {
			if err := lookup.Reload(); err != nil {
				return fmt.Errorf("reloading geoip database: %w", err)
			}
			return nil
		},
	}
}
