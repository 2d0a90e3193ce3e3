// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/olegiv/school-cms-go/internal/geoip"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// RecentInquiriesLimit is the number of inquiries on the dashboard.
const RecentInquiriesLimit = 8

// ClientInfo describes the device an inquiry was submitted from.
type ClientInfo struct {
	Browser string
	OS      string
	Device  string
	Country string
}

// DescribeClient parses a stored user agent and country code.
func DescribeClient(userAgent, countryCode string) ClientInfo {
	info := ClientInfo{Country: geoip.CountryName(countryCode)}
	if strings.TrimSpace(userAgent) == "" {
		info.Browser, info.OS, info.Device = "Unknown", "Unknown", "Unknown"
		return info
	}

	ua := useragent.Parse(userAgent)
	info.Browser = ua.Name
	if ua.Version != "" {
		info.Browser += " " + ua.Version
	}
	info.OS = ua.OS
	switch {
	case ua.Bot:
		info.Device = "Bot"
	case ua.Tablet:
		info.Device = "Tablet"
	case ua.Mobile:
		info.Device = "Mobile"
	default:
		info.Device = "Desktop"
	}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}
	return info
}

// InquiryRow is an inquiry with its parsed client details.
type InquiryRow struct {
	store.AdmissionInquiry
	Client ClientInfo
}

// Dashboard holds the admin overview figures.
type Dashboard struct {
	Sections     int64
	Gallery      int64
	Inquiries    int64
	NewInquiries int64
	Messages     int64
	Recent       []store.AdmissionInquiry
	Events       []store.Event
}

// InquiryService backs the admin inquiry and message screens.
type InquiryService struct {
	queries *store.Queries
	events  *EventService
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(db *sql.DB, events *EventService) *InquiryService {
	return &InquiryService{queries: store.New(db), events: events}
}

// List returns every inquiry, newest first.
func (s *InquiryService) List(ctx context.Context) ([]InquiryRow, error) {
	rows, err := s.queries.ListInquiries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InquiryRow, len(rows))
	for i, row := range rows {
		out[i] = InquiryRow{AdmissionInquiry: row, Client: DescribeClient(row.UserAgent, row.CountryCode)}
	}
	return out, nil
}

// UpdateStatus sets the status of inquiry id. Unknown statuses become "new".
// It returns the stored status.
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, status string) (string, error) {
	status = model.NormalizeInquiryStatus(status)
	if err := s.queries.UpdateInquiryStatus(ctx, id, status); err != nil {
		return status, fmt.Errorf("updating inquiry status: %w", err)
	}
	return status, nil
}

// Delete removes inquiry id.
func (s *InquiryService) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteInquiry(ctx, id)
}

// Messages returns every contact message, newest first.
func (s *InquiryService) Messages(ctx context.Context) ([]store.ContactMessage, error) {
	return s.queries.ListContactMessages(ctx)
}

// DeleteMessage removes contact message id.
func (s *InquiryService) DeleteMessage(ctx context.Context, id int64) error {
	return s.queries.DeleteContactMessage(ctx, id)
}

// Dashboard gathers the overview counts, recent inquiries and events.
func (s *InquiryService) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	var err error
	if d.Sections, err = s.queries.CountSections(ctx); err != nil {
		return d, err
	}
	if d.Gallery, err = s.queries.CountGalleryImages(ctx); err != nil {
		return d, err
	}
	if d.Inquiries, err = s.queries.CountInquiries(ctx); err != nil {
		return d, err
	}
	if d.NewInquiries, err = s.queries.CountInquiriesByStatus(ctx, model.InquiryStatusNew); err != nil {
		return d, err
	}
	if d.Messages, err = s.queries.CountContactMessages(ctx); err != nil {
		return d, err
	}
	if d.Recent, err = s.queries.ListRecentInquiries(ctx, RecentInquiriesLimit); err != nil {
		return d, err
	}
	if s.events != nil {
		if d.Events, err = s.events.RecentEvents(ctx, RecentEventsLimit); err != nil {
			return d, err
		}
	}
	return d, nil
}
