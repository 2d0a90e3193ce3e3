// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the school site's business logic: navigation
// composition, settings, page content, intake forms, uploads, exports and
// the audit event log.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// RecentEventsLimit is the number of events shown on the dashboard.
const RecentEventsLimit = 10

// EventService records audit events.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry. The chi request id, or a fresh
// UUID outside a request, is added to the metadata as request_id.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	var nullAdminID sql.NullInt64
	if adminID != nil && *adminID > 0 {
		nullAdminID = sql.NullInt64{Int64: *adminID, Valid: true}
	}

	meta := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	requestID := chimw.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	meta["request_id"] = requestID

	metadataJSON := "{}"
	if b, err := json.Marshal(meta); err == nil {
		metadataJSON = string(b)
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:      level,
		Category:   category,
		Message:    message,
		AdminID:    nullAdminID,
		Metadata:   metadataJSON,
		IPAddress:  ipAddress,
		RequestURL: requestURL,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.Info("failed to log event", "error", err, "message", message)
		return err
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, adminID, ipAddress, requestURL, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, adminID, ipAddress, requestURL, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, adminID, ipAddress, requestURL, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, adminID, ipAddress, requestURL, metadata)
}

// LogContentEvent logs a section or custom page change.
func (s *EventService) LogContentEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryContent, message, adminID, ipAddress, requestURL, metadata)
}

// LogMenuEvent logs a menu-related event.
func (s *EventService) LogMenuEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryMenu, message, adminID, ipAddress, requestURL, metadata)
}

// LogMediaEvent logs a banner or gallery event.
func (s *EventService) LogMediaEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryMedia, message, adminID, ipAddress, requestURL, metadata)
}

// LogInquiryEvent logs an inquiry or contact message event.
func (s *EventService) LogInquiryEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryInquiry, message, adminID, ipAddress, requestURL, metadata)
}

// LogSettingsEvent logs a settings change.
func (s *EventService) LogSettingsEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySettings, message, adminID, ipAddress, requestURL, metadata)
}

// LogSystemEvent logs a system-related event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, adminID *int64, ipAddress, requestURL string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, adminID, ipAddress, requestURL, metadata)
}

// RecentEvents returns the newest events first.
func (s *EventService) RecentEvents(ctx context.Context, limit int) ([]store.Event, error) {
	if limit <= 0 {
		limit = RecentEventsLimit
	}
	return s.queries.ListRecentEvents(ctx, int64(limit))
}

// DeleteOldEvents removes events older than the specified duration and
// returns how many were removed.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	return s.queries.DeleteEventsBefore(ctx, cutoff)
}
