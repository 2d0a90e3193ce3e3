// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/session"
	"github.com/olegiv/school-cms-go/internal/util"
)

// Public page titles.
const (
	titleHome           = "Home"
	titleAbout          = "About the School"
	titleFacilities     = "Facilities"
	titleInfrastructure = "Infrastructure"
	titleGallery        = "Gallery"
	titleAdmission      = "Admission Inquiry"
	titleContact        = "Contact Us"
	titleNotFound       = "Page Not Found"
)

var sectionPageTitles = map[string]string{
	model.PageAbout:          titleAbout,
	model.PageFacilities:     titleFacilities,
	model.PageInfrastructure: titleInfrastructure,
}

// PublicHandler serves the public school site.
type PublicHandler struct {
	base
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(cfg Config) *PublicHandler {
	return &PublicHandler{base: newBase(cfg)}
}

// SectionsPageData is rendered by the about, facilities and infrastructure pages.
type SectionsPageData struct {
	Blocks []service.Block
}

// CustomPageData is rendered by the custom page viewer.
type CustomPageData struct {
	Title     string
	Excerpt   string
	Content   string
	HeroImage string
}

// Home renders the home page.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.publicData(r, titleHome, nil)

	view, err := h.services.Content.Home(r.Context(), data.Settings.SchoolName)
	if err != nil && !middleware.SchemaMissing(r) {
		slog.Warn("home page rendered with fallbacks", "error", err)
	}
	data.Data = view

	h.render(w, r, http.StatusOK, tmplHome, data)
}

// SectionPage renders the enabled sections of the page set by the Page
// middleware: about, facilities or infrastructure.
func (h *PublicHandler) SectionPage(w http.ResponseWriter, r *http.Request) {
	page := middleware.GetPage(r)
	title, ok := sectionPageTitles[page]
	if !ok {
		h.NotFound(w, r)
		return
	}

	blocks, err := h.services.Content.PageBlocks(r.Context(), page)
	if err != nil && !middleware.SchemaMissing(r) {
		slog.Warn("section page rendered with fallbacks", "page", page, "error", err)
	}

	h.render(w, r, http.StatusOK, tmplSections, h.publicData(r, title, SectionsPageData{Blocks: blocks}))
}

// Gallery renders the active gallery images.
func (h *PublicHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.Content.Gallery(r.Context())
	if err != nil && !middleware.SchemaMissing(r) {
		slog.Warn("gallery rendered with samples", "error", err)
	}
	h.render(w, r, http.StatusOK, tmplGallery, h.publicData(r, titleGallery, view))
}

// CustomPage renders an enabled custom page by slug.
func (h *PublicHandler) CustomPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.services.Content.PublicPage(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			slog.Error("failed to load custom page", "slug", slug, "error", err)
		}
		h.NotFound(w, r)
		return
	}

	data := CustomPageData{
		Title:     page.Title,
		Excerpt:   page.Excerpt.String,
		Content:   page.Content,
		HeroImage: page.HeroImage.String,
	}
	if data.HeroImage == "" {
		data.HeroImage = service.FallbackImages[0]
	}
	h.render(w, r, http.StatusOK, tmplCustomPage, h.publicData(r, page.Title, data))
}

// NotFound renders the 404 page.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, tmplNotFound, h.publicData(r, titleNotFound, nil))
}

// AdmissionPageData is rendered by the admission form.
type AdmissionPageData struct {
	Form service.AdmissionForm
}

// ContactPageData is rendered by the contact form.
type ContactPageData struct {
	Form service.ContactForm
}

func submitter(r *http.Request) service.Submitter {
	return service.Submitter{IP: util.ClientIP(r), UserAgent: r.UserAgent()}
}

// AdmissionForm renders the admission inquiry form.
func (h *PublicHandler) AdmissionForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, tmplAdmission, h.publicData(r, titleAdmission, AdmissionPageData{}))
}

// SubmitAdmission stores an admission inquiry and redirects back to the
// form, or re-renders it with the submitted values and every error.
func (h *PublicHandler) SubmitAdmission(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		logAndHTTPError(w, "Bad Request", http.StatusBadRequest, "failed to parse admission form", "error", err)
		return
	}

	form := service.AdmissionForm{
		StudentName:   r.PostFormValue("student_name"),
		ParentName:    r.PostFormValue("parent_name"),
		ClassApplying: r.PostFormValue("class_applying"),
		Mobile:        r.PostFormValue("mobile"),
		Email:         r.PostFormValue("email"),
		Address:       r.PostFormValue("address"),
		Message:       r.PostFormValue("message"),
	}
	data := h.publicData(r, titleAdmission, AdmissionPageData{Form: form})

	if !session.From(h.sessions, r).VerifyForm() {
		h.render(w, r, http.StatusUnprocessableEntity, tmplAdmission, withErrors(data, form.RejectToken()))
		return
	}

	inq, err := h.services.Intake.SubmitAdmission(r.Context(), form, submitter(r))
	if verrs, ok := service.AsValidation(err); ok {
		h.render(w, r, http.StatusUnprocessableEntity, tmplAdmission, withErrors(data, verrs))
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to store admission inquiry", "error", err)
		return
	}

	slog.Info("admission inquiry received", "inquiry_id", inq.ID, "category", model.EventCategoryInquiry)
	h.flashSuccess(w, r, RouteAdmission, service.MsgAdmissionSuccess)
}

// ContactForm renders the contact form.
func (h *PublicHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, tmplContact, h.publicData(r, titleContact, ContactPageData{}))
}

// SubmitContact stores a contact message.
func (h *PublicHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		logAndHTTPError(w, "Bad Request", http.StatusBadRequest, "failed to parse contact form", "error", err)
		return
	}

	form := service.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	data := h.publicData(r, titleContact, ContactPageData{Form: form})

	if !session.From(h.sessions, r).VerifyForm() {
		h.render(w, r, http.StatusUnprocessableEntity, tmplContact, withErrors(data, form.RejectToken()))
		return
	}

	if _, err := h.services.Intake.SubmitContact(r.Context(), form, submitter(r)); err != nil {
		if verrs, ok := service.AsValidation(err); ok {
			h.render(w, r, http.StatusUnprocessableEntity, tmplContact, withErrors(data, verrs))
			return
		}
		logAndInternalError(w, "failed to store contact message", "error", err)
		return
	}

	h.flashSuccess(w, r, RouteContact, service.MsgContactSuccess)
}
