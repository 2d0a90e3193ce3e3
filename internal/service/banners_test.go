// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/school-cms-go/internal/imaging"
	"github.com/olegiv/school-cms-go/internal/testutil"
)

func TestBannerAdd(t *testing.T) {
	tm := newTestMedia(t)
	svc := NewBannerService(testutil.TestDB(t), tm.MediaService)
	ctx := t.Context()

	_, err := svc.Add(ctx, BannerForm{Title: " "}, pngField(t, "image"))
	verrs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgBannerTitleRequired, verrs.Fields()["title"])

	_, err = svc.Add(ctx, BannerForm{Title: "Open Day"}, ImageField{Request: uploadRequest(t, "image", "", nil), Name: "image"})
	assert.Equal(t, MsgBannerImageRequired, imaging.UserMessage(err))

	banner, err := svc.Add(ctx, BannerForm{Title: "Open Day", Subtitle: "Saturday 10am", SortOrder: 0}, pngField(t, "image"))
	require.NoError(t, err)
	assert.True(t, banner.IsActive)
	assert.EqualValues(t, 1, banner.SortOrder)
	assert.Equal(t, "Saturday 10am", banner.Subtitle.String)
	assert.True(t, tm.exists(banner.ImagePath))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBannerUpdate(t *testing.T) {
	tm := newTestMedia(t)
	svc := NewBannerService(testutil.TestDB(t), tm.MediaService)
	ctx := t.Context()

	banner, err := svc.Add(ctx, BannerForm{Title: "Open Day"}, pngField(t, "image"))
	require.NoError(t, err)

	f, err := svc.Get(ctx, banner.ID)
	require.NoError(t, err)
	f.Title = "Admissions Open"
	f.Active = false

	// remove_image is ignored: a banner always has an image.
	f, err = svc.Update(ctx, f, ImageField{Remove: true})
	require.NoError(t, err)
	assert.Equal(t, banner.ImagePath, f.ImagePath)
	assert.True(t, tm.exists(banner.ImagePath))

	f, err = svc.Update(ctx, f, pngField(t, "image"))
	require.NoError(t, err)
	assert.NotEqual(t, banner.ImagePath, f.ImagePath)
	assert.False(t, tm.exists(banner.ImagePath))

	got, err := svc.Get(ctx, banner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Admissions Open", got.Title)
	assert.False(t, got.Active)
	assert.Equal(t, f.ImagePath, got.ImagePath)
}

func TestBannerSetActiveAndDelete(t *testing.T) {
	tm := newTestMedia(t)
	svc := NewBannerService(testutil.TestDB(t), tm.MediaService)
	ctx := t.Context()

	banner, err := svc.Add(ctx, BannerForm{Title: "Sports Week"}, pngField(t, "image"))
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, banner.ID, false))
	f, err := svc.Get(ctx, banner.ID)
	require.NoError(t, err)
	assert.False(t, f.Active)

	row, err := svc.Delete(ctx, banner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sports Week", row.Title)
	assert.False(t, tm.exists(banner.ImagePath))
}

func TestGalleryService(t *testing.T) {
	tm := newTestMedia(t)
	svc := NewGalleryService(testutil.TestDB(t), tm.MediaService)
	ctx := t.Context()

	_, err := svc.Add(ctx, "", pngField(t, "image"))
	verrs, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgImageTitleRequired, verrs.Fields()["title"])

	_, err = svc.Add(ctx, "Science Fair", ImageField{})
	assert.Equal(t, MsgImageFileRequired, imaging.UserMessage(err))

	img, err := svc.Add(ctx, "Science Fair", pngField(t, "image"))
	require.NoError(t, err)
	assert.True(t, img.IsActive)
	assert.True(t, tm.exists(img.ImagePath))

	require.NoError(t, svc.SetActive(ctx, img.ID, false))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsActive)

	_, err = svc.Delete(ctx, img.ID)
	require.NoError(t, err)
	assert.False(t, tm.exists(img.ImagePath))
}
