// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
	"github.com/olegiv/school-cms-go/internal/util"
)

// SectionForm is the add/edit section form.
type SectionForm struct {
	ID         int64
	PageSlug   string `form:"page_slug" validate:"cmspage"`
	SectionKey string `form:"section_key" validate:"required,sectionkey"`
	Title      string `form:"title" validate:"required"`
	Content    string `form:"content" validate:"required"`
	ImagePath  string
	Enabled    bool
	SortOrder  int64
}

var sectionMessages = map[string]string{
	"page_slug":              "Invalid page selected.",
	"section_key.required":   "Section key is required.",
	"section_key.sectionkey": "Section key can contain only lowercase letters, numbers, underscores, and dashes.",
	"title":                  "Section title is required.",
	"content":                "Section content is required.",
}

// NewSectionForm returns a blank form for page. Unknown pages fall back to home.
func NewSectionForm(page string) SectionForm {
	if _, ok := model.CMSPageLabel(page); !ok {
		page = model.PageHome
	}
	return SectionForm{PageSlug: page, Enabled: true, SortOrder: 1}
}

func sectionFormFromRow(row store.PageSection) SectionForm {
	return SectionForm{
		ID:         row.ID,
		PageSlug:   row.PageSlug,
		SectionKey: row.SectionKey,
		Title:      row.Title,
		Content:    row.Content,
		ImagePath:  row.ImagePath.String,
		Enabled:    row.IsEnabled,
		SortOrder:  row.SortOrder,
	}
}

// Validate checks the form fields.
func (f SectionForm) Validate() ValidationErrors {
	return checkStruct(f, sectionMessages)
}

func (f SectionForm) normalized() SectionForm {
	f.PageSlug = strings.TrimSpace(f.PageSlug)
	f.SectionKey = strings.TrimSpace(f.SectionKey)
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)
	if f.SortOrder < 1 {
		f.SortOrder = 1
	}
	return f
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SectionService manages page sections.
type SectionService struct {
	queries *store.Queries
	media   *MediaService
}

// NewSectionService creates a new SectionService.
func NewSectionService(db *sql.DB, media *MediaService) *SectionService {
	return &SectionService{queries: store.New(db), media: media}
}

// List returns every section of page, enabled or not, in display order.
func (s *SectionService) List(ctx context.Context, page string) ([]store.PageSection, error) {
	return s.queries.ListSectionsByPage(ctx, page)
}

// Get returns section id as a form. Unknown ids yield sql.ErrNoRows.
func (s *SectionService) Get(ctx context.Context, id int64) (SectionForm, error) {
	row, err := s.queries.GetSection(ctx, id)
	if err != nil {
		return SectionForm{}, err
	}
	return sectionFormFromRow(row), nil
}

// Save validates f, applies the image field and creates or updates the
// section. It reports whether a section was created.
func (s *SectionService) Save(ctx context.Context, f SectionForm, img ImageField) (SectionForm, bool, error) {
	f = f.normalized()
	f.ImagePath = ""
	if f.ID > 0 {
		existing, err := s.queries.GetSection(ctx, f.ID)
		if err != nil {
			return f, false, fmt.Errorf("loading section %d: %w", f.ID, err)
		}
		f.ImagePath = existing.ImagePath.String
	}
	if verrs := f.Validate(); len(verrs) > 0 {
		return f, false, verrs
	}

	path, err := s.media.Replace(f.ImagePath, img, model.UploadDirBanners)
	if err != nil {
		return f, false, err
	}
	f.ImagePath = path

	params := store.SectionParams{
		PageSlug:   f.PageSlug,
		SectionKey: f.SectionKey,
		Title:      f.Title,
		Content:    f.Content,
		ImagePath:  nullString(f.ImagePath),
		IsEnabled:  f.Enabled,
		SortOrder:  f.SortOrder,
		At:         time.Now().UTC(),
	}
	if f.ID > 0 {
		if err := s.queries.UpdateSection(ctx, f.ID, params); err != nil {
			return f, false, fmt.Errorf("updating section: %w", err)
		}
		return f, false, nil
	}
	created, err := s.queries.CreateSection(ctx, params)
	if err != nil {
		return f, false, fmt.Errorf("creating section: %w", err)
	}
	f.ID = created.ID
	return f, true, nil
}

// SetEnabled shows or hides a section.
func (s *SectionService) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return s.queries.SetSectionEnabled(ctx, id, enabled, time.Now().UTC())
}

// Delete removes a section and its image file. It returns the removed row.
func (s *SectionService) Delete(ctx context.Context, id int64) (store.PageSection, error) {
	row, err := s.queries.GetSection(ctx, id)
	if err != nil {
		return row, err
	}
	if err := s.queries.DeleteSection(ctx, id); err != nil {
		return row, fmt.Errorf("deleting section: %w", err)
	}
	s.media.Remove(row.ImagePath.String)
	return row, nil
}

// CustomPageForm is the add/edit custom page form.
type CustomPageForm struct {
	ID        int64
	Title     string `form:"title" validate:"required"`
	Slug      string `form:"slug" validate:"slug"`
	Excerpt   string
	Content   string `form:"content" validate:"required"`
	HeroImage string
	Enabled   bool
	SortOrder int64
}

// Custom page messages.
const (
	MsgSlugInvalid = "Slug can contain only lowercase letters, numbers, and dashes."
	MsgSlugTaken   = "Slug already exists. Please choose another."
)

var customPageMessages = map[string]string{
	"title":   "Title is required.",
	"content": "Content is required.",
	"slug":    MsgSlugInvalid,
}

// NewCustomPageForm returns the blank "new page" form.
func NewCustomPageForm() CustomPageForm {
	return CustomPageForm{Enabled: true, SortOrder: 1}
}

func customPageFormFromRow(row store.CustomPage) CustomPageForm {
	return CustomPageForm{
		ID:        row.ID,
		Title:     row.Title,
		Slug:      row.Slug,
		Excerpt:   row.Excerpt.String,
		Content:   row.Content,
		HeroImage: row.HeroImage.String,
		Enabled:   row.IsEnabled,
		SortOrder: row.SortOrder,
	}
}

func (f CustomPageForm) normalized() CustomPageForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Excerpt = strings.TrimSpace(f.Excerpt)
	f.Content = strings.TrimSpace(f.Content)
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		slug = f.Title
	}
	f.Slug = util.Slugify(slug)
	if f.SortOrder < 1 {
		f.SortOrder = 1
	}
	return f
}

// CustomPageService manages custom pages.
type CustomPageService struct {
	queries *store.Queries
	media   *MediaService
}

// NewCustomPageService creates a new CustomPageService.
func NewCustomPageService(db *sql.DB, media *MediaService) *CustomPageService {
	return &CustomPageService{queries: store.New(db), media: media}
}

// List returns all custom pages in display order.
func (s *CustomPageService) List(ctx context.Context) ([]store.CustomPage, error) {
	return s.queries.ListCustomPages(ctx)
}

// Get returns page id as a form, disabled or not.
func (s *CustomPageService) Get(ctx context.Context, id int64) (CustomPageForm, error) {
	row, err := s.queries.GetCustomPageByID(ctx, id)
	if err != nil {
		return CustomPageForm{}, err
	}
	return customPageFormFromRow(row), nil
}

// Save validates f, applies the hero image field and creates or updates
// the page. The slug is derived from the title when left blank. The
// uniqueness check and the write are separate statements; a concurrent
// save of the same slug fails on the unique index instead.
func (s *CustomPageService) Save(ctx context.Context, f CustomPageForm, img ImageField) (CustomPageForm, bool, error) {
	f = f.normalized()
	f.HeroImage = ""
	if f.ID > 0 {
		existing, err := s.queries.GetCustomPageByID(ctx, f.ID)
		if err != nil {
			return f, false, fmt.Errorf("loading page %d: %w", f.ID, err)
		}
		f.HeroImage = existing.HeroImage.String
	}

	verrs := checkStruct(f, customPageMessages)
	if f.Slug != "" && !verrs.Has("slug") {
		n, err := s.queries.CountCustomPageSlug(ctx, f.Slug, f.ID)
		if err != nil {
			return f, false, fmt.Errorf("checking slug: %w", err)
		}
		if n > 0 {
			verrs.Add("slug", MsgSlugTaken)
		}
	}
	if len(verrs) > 0 {
		return f, false, verrs
	}

	path, err := s.media.Replace(f.HeroImage, img, model.UploadDirBanners)
	if err != nil {
		return f, false, err
	}
	f.HeroImage = path

	params := store.CustomPageParams{
		Title:     f.Title,
		Slug:      f.Slug,
		Excerpt:   nullString(f.Excerpt),
		Content:   f.Content,
		HeroImage: nullString(f.HeroImage),
		IsEnabled: f.Enabled,
		SortOrder: f.SortOrder,
		At:        time.Now().UTC(),
	}
	if f.ID > 0 {
		if err := s.queries.UpdateCustomPage(ctx, f.ID, params); err != nil {
			return f, false, fmt.Errorf("updating page: %w", err)
		}
		return f, false, nil
	}
	created, err := s.queries.CreateCustomPage(ctx, params)
	if err != nil {
		return f, false, fmt.Errorf("creating page: %w", err)
	}
	f.ID = created.ID
	return f, true, nil
}

// SetEnabled publishes or hides a page.
func (s *CustomPageService) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return s.queries.SetCustomPageEnabled(ctx, id, enabled, time.Now().UTC())
}

// Delete removes a page and its hero image. Menu items that linked to it
// keep existing without a page.
func (s *CustomPageService) Delete(ctx context.Context, id int64) (store.CustomPage, error) {
	row, err := s.queries.GetCustomPageByID(ctx, id)
	if err != nil {
		return row, err
	}
	if err := s.queries.DeleteCustomPage(ctx, id); err != nil {
		return row, fmt.Errorf("deleting page: %w", err)
	}
	s.media.Remove(row.HeroImage.String)
	return row, nil
}
