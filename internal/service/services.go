// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"

	"github.com/olegiv/school-cms-go/internal/geoip"
	"github.com/olegiv/school-cms-go/internal/imaging"
	"github.com/olegiv/school-cms-go/internal/metrics"
	"github.com/olegiv/school-cms-go/internal/notify"
)

// Deps are the optional collaborators of the service layer. Nil fields
// disable the feature they back.
type Deps struct {
	BasePath   string
	UploadsDir string
	GeoIP      *geoip.Lookup
	Notifier   *notify.Notifier
	Metrics    *metrics.Metrics
}

// Services groups every service used by the handlers.
type Services struct {
	Events      *EventService
	Settings    *SettingsService
	Menu        *MenuService
	Content     *ContentService
	Media       *MediaService
	Sections    *SectionService
	CustomPages *CustomPageService
	Banners     *BannerService
	Gallery     *GalleryService
	Intake      *IntakeService
	Inquiries   *InquiryService
	Admins      *AdminService
}

// New wires all services onto db.
func New(db *sql.DB, deps Deps) *Services {
	events := NewEventService(db)
	media := NewMediaService(imaging.NewProcessor(deps.UploadsDir), deps.Metrics)

	return &Services{
		Events:      events,
		Settings:    NewSettingsService(db),
		Menu:        NewMenuService(db, deps.BasePath),
		Content:     NewContentService(db),
		Media:       media,
		Sections:    NewSectionService(db, media),
		CustomPages: NewCustomPageService(db, media),
		Banners:     NewBannerService(db, media),
		Gallery:     NewGalleryService(db, media),
		Intake:      NewIntakeService(db, deps.GeoIP, deps.Notifier, deps.Metrics),
		Inquiries:   NewInquiryService(db, events),
		Admins:      NewAdminService(db),
	}
}
