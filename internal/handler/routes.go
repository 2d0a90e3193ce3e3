// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/school-cms-go/internal/menu"
	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
)

// Cache lifetimes in seconds.
const (
	staticMaxAge  = 31536000 // 1 year
	uploadsMaxAge = 604800   // 1 week
)

// RouteOptions holds the optional protections applied to the form routes.
type RouteOptions struct {
	LoginProtection *middleware.LoginProtection
	FormLimiter     *middleware.FormRateLimiter
}

func passThrough(next http.Handler) http.Handler { return next }

// Routes builds the site router. Every route is registered under
// cfg.BasePath. The caller applies the session, CSRF and logging
// middleware around the returned handler.
func Routes(cfg Config, opts RouteOptions) http.Handler {
	public := NewPublicHandler(cfg)
	auth := NewAuthHandler(cfg, opts.LoginProtection)
	admin := NewAdminHandler(cfg)
	sections := NewSectionsHandler(cfg)
	customPages := NewCustomPagesHandler(cfg)
	menus := NewMenusHandler(cfg)
	banners := NewBannersHandler(cfg)
	inquiries := NewInquiriesHandler(cfg)
	settings := NewSettingsHandler(cfg)
	health := NewHealthHandler(cfg)
	seoPages := NewSEOHandler(cfg)

	loginLimit, formLimit := passThrough, passThrough
	if opts.LoginProtection != nil {
		loginLimit = opts.LoginProtection.Middleware
	}
	if opts.FormLimiter != nil {
		formLimit = opts.FormLimiter.Middleware
	}

	r := chi.NewRouter()

	r.Get(RouteHealth, health.Health)
	r.Get(RouteSitemap, seoPages.Sitemap)
	r.Get(RouteRobots, seoPages.Robots)

	if cfg.Static != nil {
		static := http.StripPrefix(cfg.BasePath+"/static/", http.FileServer(http.FS(cfg.Static)))
		r.Handle(RouteStatic, middleware.StaticCache(staticMaxAge)(static))
	}
	if cfg.UploadsDir != "" {
		uploads := http.StripPrefix(cfg.BasePath+"/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Handle(RouteUploads, middleware.StaticCache(uploadsMaxAge)(uploads))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SchemaCheck(cfg.DB))

		// Public site
		r.With(middleware.Page(model.PageHome)).Get(RouteRoot, public.Home)
		r.With(middleware.Page(model.PageAbout)).Get(RouteAbout, public.SectionPage)
		r.With(middleware.Page(model.PageFacilities)).Get(RouteFacilities, public.SectionPage)
		r.With(middleware.Page(model.PageInfrastructure)).Get(RouteInfrastructure, public.SectionPage)
		r.With(middleware.Page(model.PageGallery)).Get(RouteGallery, public.Gallery)
		r.With(middleware.Page(model.PageCustom)).Get(RouteCustomPage, public.CustomPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Page(model.PageAdmission), formLimit)
			r.Get(RouteAdmission, public.AdmissionForm)
			r.Post(RouteAdmission, public.SubmitAdmission)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.Page(model.PageContact), formLimit)
			r.Get(RouteContact, public.ContactForm)
			r.Post(RouteContact, public.SubmitContact)
		})

		// Sign-in
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Get(RouteSetup, auth.SetupForm)
			r.With(formLimit).Post(RouteSetup, auth.Setup)
			r.Get(RouteLogin, auth.LoginForm)
			r.With(loginLimit).Post(RouteLogin, auth.Login)
		})

		// Back office
		loginURL := menu.URL(cfg.BasePath, RouteLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.RequireAdmin(cfg.Sessions, loginURL))
			r.Use(middleware.LoadAdmin(cfg.Sessions, cfg.DB, loginURL))

			r.Post(RouteLogout, auth.Logout)
			r.Get(RouteAdmin, admin.Dashboard)

			r.Get(RouteSections, sections.List)
			r.Post(RouteSections, sections.Post)
			r.Get(RouteSectionEdit, sections.EditForm)
			r.Post(RouteSectionEdit, sections.Edit)
			r.Post(RouteSectionDelete, sections.Delete)

			r.Get(RouteCustomPages, customPages.List)
			r.Post(RouteCustomPages, customPages.Post)

			r.Get(RouteMenu, menus.List)
			r.Post(RouteMenu, menus.Post)

			r.Get(RouteBanners, banners.Banners)
			r.Post(RouteBanners, banners.PostBanners)
			r.Get(RouteBannerEdit, banners.EditBannerForm)
			r.Post(RouteBannerEdit, banners.EditBanner)
			r.Get(RouteAdminGallery, banners.Gallery)
			r.Post(RouteAdminGallery, banners.PostGallery)

			r.Get(RouteInquiries, inquiries.List)
			r.Post(RouteInquiries, inquiries.Post)
			r.Get(RouteInquiriesCSV, inquiries.ExportCSV)
			r.Get(RouteInquiriesXLSX, inquiries.ExportXLSX)
			r.Get(RouteMessages, inquiries.Messages)
			r.Post(RouteMessages, inquiries.PostMessages)

			r.Get(RouteSettings, settings.Form)
			r.Post(RouteSettings, settings.Save)
		})

		r.NotFound(public.NotFound)
	})

	if cfg.BasePath == "" {
		return r
	}
	root := chi.NewRouter()
	root.Mount(cfg.BasePath, r)
	root.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, cfg.BasePath+"/", http.StatusFound)
	})
	return root
}
