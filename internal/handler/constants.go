// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration. They are relative
// to the site base path.
const (
	// RouteRoot is the home page.
	RouteRoot = "/"
	// RouteAbout is the about page.
	RouteAbout = "/about"
	// RouteFacilities is the facilities page.
	RouteFacilities = "/facilities"
	// RouteInfrastructure is the infrastructure page.
	RouteInfrastructure = "/infrastructure"
	// RouteGallery is the public gallery.
	RouteGallery = "/gallery"
	// RouteAdmission is the admission inquiry form.
	RouteAdmission = "/admission"
	// RouteContact is the contact form.
	RouteContact = "/contact"
	// RouteCustomPage is the custom page viewer.
	RouteCustomPage = "/page/{slug}"
	// RouteHealth is the health check endpoint.
	RouteHealth = "/health"
	// RouteSitemap lists the public pages for search engines.
	RouteSitemap = "/sitemap.xml"
	// RouteRobots is the crawler policy.
	RouteRobots = "/robots.txt"

	// RouteStatic serves the embedded CSS, JS and images.
	RouteStatic = "/static/*"
	// RouteUploads serves uploaded images.
	RouteUploads = "/uploads/*"

	// RouteAdmin is the admin dashboard.
	RouteAdmin = "/admin"
	// RouteSetup creates the first admin account.
	RouteSetup = RouteAdmin + "/setup"
	// RouteLogin is the login route.
	RouteLogin = RouteAdmin + "/login"
	// RouteLogout is the logout route.
	RouteLogout = RouteAdmin + "/logout"

	// RouteSections lists the sections of one page.
	RouteSections = RouteAdmin + "/sections"
	// RouteSectionEdit adds or edits a section.
	RouteSectionEdit = RouteSections + "/edit"
	// RouteSectionDelete deletes a section.
	RouteSectionDelete = RouteSections + "/delete"
	// RouteCustomPages is the custom pages screen.
	RouteCustomPages = RouteAdmin + "/custom-pages"
	// RouteMenu is the menu builder.
	RouteMenu = RouteAdmin + "/menu"
	// RouteBanners is the home banner screen.
	RouteBanners = RouteAdmin + "/banners"
	// RouteBannerEdit edits one banner.
	RouteBannerEdit = RouteBanners + "/edit"
	// RouteAdminGallery is the gallery screen.
	RouteAdminGallery = RouteAdmin + "/gallery"
	// RouteInquiries is the admission inquiries screen.
	RouteInquiries = RouteAdmin + "/inquiries"
	// RouteInquiriesCSV downloads the inquiries as CSV.
	RouteInquiriesCSV = RouteInquiries + "/export.csv"
	// RouteInquiriesXLSX downloads the inquiries as an Excel workbook.
	RouteInquiriesXLSX = RouteInquiries + "/export.xlsx"
	// RouteMessages is the contact messages screen.
	RouteMessages = RouteAdmin + "/messages"
	// RouteSettings is the site settings screen.
	RouteSettings = RouteAdmin + "/settings"
)

// Form field names shared by the admin screens.
const (
	fieldAction  = "action"
	fieldID      = "id"
	fieldEnabled = "enabled"
	fieldRemove  = "remove_image"
)

// Shared admin messages.
const (
	MsgInvalidToken        = "Invalid request token."
	MsgInvalidTokenRefresh = "Invalid request token. Please refresh and try again."
	MsgInvalidForm         = "Invalid form data."
	MsgUnknownAction       = "Unknown action."
	MsgSchemaMissing       = "Database tables are missing. Run the migrations (schoolcms -migrate) and reload."
	MsgLoggedOut           = "You have been logged out."
)

// Template names.
const (
	tmplHome       = "public/home"
	tmplSections   = "public/sections"
	tmplGallery    = "public/gallery"
	tmplAdmission  = "public/admission"
	tmplContact    = "public/contact"
	tmplCustomPage = "public/page"
	tmplNotFound   = "public/not_found"

	tmplLogin = "auth/login"
	tmplSetup = "auth/setup"

	tmplDashboard     = "admin/dashboard"
	tmplAdminSections = "admin/sections"
	tmplSectionEdit   = "admin/section_edit"
	tmplCustomPages   = "admin/custom_pages"
	tmplMenu          = "admin/menu"
	tmplBanners       = "admin/banners"
	tmplBannerEdit    = "admin/banner_edit"
	tmplAdminGallery  = "admin/gallery"
	tmplInquiries     = "admin/inquiries"
	tmplMessages      = "admin/messages"
	tmplSettings      = "admin/settings"
)
