// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Gallery

const galleryColumns = `id, title, image_path, is_active, uploaded_at`

func scanGalleryImage(row interface{ Scan(...any) error }) (GalleryImage, error) {
	var g GalleryImage
	err := row.Scan(&g.ID, &g.Title, &g.ImagePath, &g.IsActive, &g.UploadedAt)
	return g, err
}

const listGalleryImages = `SELECT ` + galleryColumns + ` FROM gallery_images ORDER BY uploaded_at DESC, id DESC`

func (q *Queries) ListGalleryImages(ctx context.Context) ([]GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryImages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []GalleryImage
	for rows.Next() {
		g, err := scanGalleryImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

const getGalleryImage = `SELECT ` + galleryColumns + ` FROM gallery_images WHERE id = ? LIMIT 1`

func (q *Queries) GetGalleryImage(ctx context.Context, id int64) (GalleryImage, error) {
	return scanGalleryImage(q.db.QueryRowContext(ctx, getGalleryImage, id))
}

const countGalleryImages = `SELECT COUNT(*) FROM gallery_images`

func (q *Queries) CountGalleryImages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countGalleryImages).Scan(&n)
	return n, err
}

type CreateGalleryImageParams struct {
	Title      string
	ImagePath  string
	IsActive   bool
	UploadedAt time.Time
}

const createGalleryImage = `INSERT INTO gallery_images (title, image_path, is_active, uploaded_at)
VALUES (?, ?, ?, ?)
RETURNING ` + galleryColumns

func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (GalleryImage, error) {
	return scanGalleryImage(q.db.QueryRowContext(ctx, createGalleryImage,
		arg.Title, arg.ImagePath, boolToInt(arg.IsActive), arg.UploadedAt))
}

const setGalleryImageActive = `UPDATE gallery_images SET is_active = ? WHERE id = ?`

func (q *Queries) SetGalleryImageActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx, setGalleryImageActive, boolToInt(active), id)
	return err
}

const deleteGalleryImage = `DELETE FROM gallery_images WHERE id = ?`

func (q *Queries) DeleteGalleryImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGalleryImage, id)
	return err
}

// Banners

const bannerColumns = `id, title, subtitle, image_path, is_active, sort_order, created_at`

func scanBanner(row interface{ Scan(...any) error }) (HomeBanner, error) {
	var b HomeBanner
	err := row.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImagePath, &b.IsActive, &b.SortOrder, &b.CreatedAt)
	return b, err
}

func (q *Queries) listBanners(ctx context.Context, query string) ([]HomeBanner, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var items []HomeBanner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const listBanners = `SELECT ` + bannerColumns + ` FROM home_banners ORDER BY sort_order ASC, id DESC`

func (q *Queries) ListBanners(ctx context.Context) ([]HomeBanner, error) {
	return q.listBanners(ctx, listBanners)
}

const listActiveBanners = `SELECT ` + bannerColumns + ` FROM home_banners
WHERE is_active = 1
ORDER BY sort_order ASC, id DESC`

func (q *Queries) ListActiveBanners(ctx context.Context) ([]HomeBanner, error) {
	return q.listBanners(ctx, listActiveBanners)
}

const getBanner = `SELECT ` + bannerColumns + ` FROM home_banners WHERE id = ? LIMIT 1`

func (q *Queries) GetBanner(ctx context.Context, id int64) (HomeBanner, error) {
	return scanBanner(q.db.QueryRowContext(ctx, getBanner, id))
}

type BannerParams struct {
	Title     string
	Subtitle  sql.NullString
	ImagePath string
	IsActive  bool
	SortOrder int64
}

const createBanner = `INSERT INTO home_banners (title, subtitle, image_path, is_active, sort_order, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + bannerColumns

func (q *Queries) CreateBanner(ctx context.Context, arg BannerParams, at time.Time) (HomeBanner, error) {
	return scanBanner(q.db.QueryRowContext(ctx, createBanner,
		arg.Title, arg.Subtitle, arg.ImagePath, boolToInt(arg.IsActive), arg.SortOrder, at))
}

const updateBanner = `UPDATE home_banners
SET title = ?, subtitle = ?, image_path = ?, is_active = ?, sort_order = ?
WHERE id = ?`

func (q *Queries) UpdateBanner(ctx context.Context, id int64, arg BannerParams) error {
	_, err := q.db.ExecContext(ctx, updateBanner,
		arg.Title, arg.Subtitle, arg.ImagePath, boolToInt(arg.IsActive), arg.SortOrder, id)
	return err
}

const setBannerActive = `UPDATE home_banners SET is_active = ? WHERE id = ?`

func (q *Queries) SetBannerActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx, setBannerActive, boolToInt(active), id)
	return err
}

const deleteBanner = `DELETE FROM home_banners WHERE id = ?`

func (q *Queries) DeleteBanner(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBanner, id)
	return err
}
