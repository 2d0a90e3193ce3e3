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
)

// Banner and gallery messages.
const (
	MsgBannerTitleRequired = "Banner title is required."
	MsgBannerImageRequired = "Please select a banner image."
	MsgImageTitleRequired  = "Image title is required."
	MsgImageFileRequired   = "Please select an image file."
)

// BannerForm is the add/edit banner form.
type BannerForm struct {
	ID        int64
	Title     string
	Subtitle  string
	ImagePath string
	Active    bool
	SortOrder int64
}

func bannerFormFromRow(row store.HomeBanner) BannerForm {
	return BannerForm{
		ID:        row.ID,
		Title:     row.Title,
		Subtitle:  row.Subtitle.String,
		ImagePath: row.ImagePath,
		Active:    row.IsActive,
		SortOrder: row.SortOrder,
	}
}

func (f BannerForm) normalized() BannerForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Subtitle = strings.TrimSpace(f.Subtitle)
	if f.SortOrder < 1 {
		f.SortOrder = 1
	}
	return f
}

func (f BannerForm) params() store.BannerParams {
	return store.BannerParams{
		Title:     f.Title,
		Subtitle:  nullString(f.Subtitle),
		ImagePath: f.ImagePath,
		IsActive:  f.Active,
		SortOrder: f.SortOrder,
	}
}

// BannerService manages the home page carousel.
type BannerService struct {
	queries *store.Queries
	media   *MediaService
}

// NewBannerService creates a new BannerService.
func NewBannerService(db *sql.DB, media *MediaService) *BannerService {
	return &BannerService{queries: store.New(db), media: media}
}

// List returns all banners, sort_order ASC then newest first.
func (s *BannerService) List(ctx context.Context) ([]store.HomeBanner, error) {
	return s.queries.ListBanners(ctx)
}

// Get returns banner id as a form.
func (s *BannerService) Get(ctx context.Context, id int64) (BannerForm, error) {
	row, err := s.queries.GetBanner(ctx, id)
	if err != nil {
		return BannerForm{}, err
	}
	return bannerFormFromRow(row), nil
}

// Add creates an active banner. The image is mandatory.
func (s *BannerService) Add(ctx context.Context, f BannerForm, img ImageField) (store.HomeBanner, error) {
	f = f.normalized()
	if f.Title == "" {
		return store.HomeBanner{}, ValidationErrors{{Field: "title", Message: MsgBannerTitleRequired}}
	}
	path, err := s.media.Require(img, model.UploadDirBanners, MsgBannerImageRequired)
	if err != nil {
		return store.HomeBanner{}, err
	}
	f.ImagePath = path
	f.Active = true

	banner, err := s.queries.CreateBanner(ctx, f.params(), time.Now().UTC())
	if err != nil {
		return banner, fmt.Errorf("creating banner: %w", err)
	}
	return banner, nil
}

// Update saves an edited banner. A posted image replaces the current one;
// the image cannot be removed without a replacement.
func (s *BannerService) Update(ctx context.Context, f BannerForm, img ImageField) (BannerForm, error) {
	f = f.normalized()
	existing, err := s.queries.GetBanner(ctx, f.ID)
	if err != nil {
		return f, err
	}
	f.ImagePath = existing.ImagePath
	if f.Title == "" {
		return f, ValidationErrors{{Field: "title", Message: MsgBannerTitleRequired}}
	}

	img.Remove = false
	path, err := s.media.Replace(f.ImagePath, img, model.UploadDirBanners)
	if err != nil {
		return f, err
	}
	f.ImagePath = path

	if err := s.queries.UpdateBanner(ctx, f.ID, f.params()); err != nil {
		return f, fmt.Errorf("updating banner: %w", err)
	}
	return f, nil
}

// SetActive shows or hides a banner.
func (s *BannerService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.queries.SetBannerActive(ctx, id, active)
}

// Delete removes a banner and its image file.
func (s *BannerService) Delete(ctx context.Context, id int64) (store.HomeBanner, error) {
	row, err := s.queries.GetBanner(ctx, id)
	if err != nil {
		return row, err
	}
	if err := s.queries.DeleteBanner(ctx, id); err != nil {
		return row, fmt.Errorf("deleting banner: %w", err)
	}
	s.media.Remove(row.ImagePath)
	return row, nil
}

// GalleryService manages gallery images.
type GalleryService struct {
	queries *store.Queries
	media   *MediaService
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(db *sql.DB, media *MediaService) *GalleryService {
	return &GalleryService{queries: store.New(db), media: media}
}

// List returns every gallery image, newest first.
func (s *GalleryService) List(ctx context.Context) ([]store.GalleryImage, error) {
	return s.queries.ListGalleryImages(ctx)
}

// Add uploads an image and creates an active gallery entry.
func (s *GalleryService) Add(ctx context.Context, title string, img ImageField) (store.GalleryImage, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return store.GalleryImage{}, ValidationErrors{{Field: "title", Message: MsgImageTitleRequired}}
	}
	path, err := s.media.Require(img, model.UploadDirGallery, MsgImageFileRequired)
	if err != nil {
		return store.GalleryImage{}, err
	}
	image, err := s.queries.CreateGalleryImage(ctx, store.CreateGalleryImageParams{
		Title:      title,
		ImagePath:  path,
		IsActive:   true,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return image, fmt.Errorf("creating gallery image: %w", err)
	}
	return image, nil
}

// SetActive shows or hides an image.
func (s *GalleryService) SetActive(ctx context.Context, id int64, active bool) error {
	return s.queries.SetGalleryImageActive(ctx, id, active)
}

// Delete removes an image row and its file.
func (s *GalleryService) Delete(ctx context.Context, id int64) (store.GalleryImage, error) {
	row, err := s.queries.GetGalleryImage(ctx, id)
	if err != nil {
		return row, err
	}
	if err := s.queries.DeleteGalleryImage(ctx, id); err != nil {
		return row, fmt.Errorf("deleting gallery image: %w", err)
	}
	s.media.Remove(row.ImagePath)
	return row, nil
}
