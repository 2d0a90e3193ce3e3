// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the events table shown on the admin dashboard.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// CategoryKey is the attribute that selects an event category.
const CategoryKey = "category"

// EventLogHandler wraps another handler and also persists records at or
// above its level into the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
}

// NewEventLogHandler creates a handler that persists WARN and above.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a handler with a custom persistence threshold.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// ParseLevel maps SCMS_LOG_LEVEL values to slog levels. Unknown or empty
// values fall back to debug in development and info otherwise.
func ParseLevel(s string, isDev bool) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if isDev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewTextHandler returns the stdout handler used before and under the event log.
func NewTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
		attrs:   append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup implements slog.Handler. Grouped attributes are still stored flat.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
		attrs:   h.attrs,
	}
}

// writeToEventLog uses a fresh context so that a cancelled request still
// leaves its warning behind.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	category, metadata := splitAttrs(attrs)
	if category == "" {
		category = inferCategory(r.Message)
	}

	created := r.Time
	if created.IsZero() {
		created = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  category,
		Message:   r.Message,
		Metadata:  metadata,
		CreatedAt: created.UTC(),
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

func inferCategory(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "login"), strings.Contains(msg, "admin"), strings.Contains(msg, "session"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "upload"), strings.Contains(msg, "image"):
		return model.EventCategoryMedia
	case strings.Contains(msg, "inquiry"), strings.Contains(msg, "contact"), strings.Contains(msg, "form"):
		return model.EventCategoryInquiry
	case strings.Contains(msg, "menu"):
		return model.EventCategoryMenu
	case strings.Contains(msg, "setting"):
		return model.EventCategorySettings
	default:
		return model.EventCategorySystem
	}
}

// splitAttrs pulls the category out and encodes the rest as a JSON object.
func splitAttrs(attrs []slog.Attr) (category, metadata string) {
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == CategoryKey {
			category = a.Value.String()
			continue
		}
		v := a.Value.Resolve()
		if err, ok := v.Any().(error); ok {
			values[a.Key] = err.Error()
			continue
		}
		values[a.Key] = fmt.Sprint(v.Any())
	}
	if len(values) == 0 {
		return category, "{}"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return category, "{}"
	}
	return category, string(b)
}
