// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/school-cms-go/internal/middleware"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/service"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Banner and gallery messages.
const (
	MsgBannerAdded    = "Banner added successfully."
	MsgBannerUpdated  = "Banner updated successfully."
	MsgBannerToggled  = "Banner visibility updated."
	MsgBannerDeleted  = "Banner deleted."
	MsgBannerInvalid  = "Invalid banner selected."
	MsgBannerNotFound = "Banner not found."

	MsgImageUploaded = "Image uploaded successfully."
	MsgImageToggled  = "Image visibility updated."
	MsgImageDeleted  = "Image deleted."
	MsgImageInvalid  = "Invalid image selected."
	MsgImageNotFound = "Image not found."
)

// BannersHandler manages the home carousel and the gallery.
type BannersHandler struct {
	base
}

// NewBannersHandler creates a new BannersHandler.
func NewBannersHandler(cfg Config) *BannersHandler {
	return &BannersHandler{base: newBase(cfg)}
}

// BannersData is rendered by the banner list.
type BannersData struct {
	Banners []store.HomeBanner
}

// BannerEditData is rendered by the banner edit form.
type BannerEditData struct {
	Form service.BannerForm
}

// GalleryAdminData is rendered by the gallery screen.
type GalleryAdminData struct {
	Images []store.GalleryImage
}

func bannerEditURL(id int64) string {
	return RouteBannerEdit + "?id=" + strconv.FormatInt(id, 10)
}

// flashRejected flashes the validation messages of a list-screen add form.
func (b base) flashRejected(w http.ResponseWriter, r *http.Request, back string, verrs service.ValidationErrors) {
	b.flashError(w, r, back, strings.Join(verrs.Messages(), " "))
}

// Banners renders the banner list with the add form.
func (h *BannersHandler) Banners(w http.ResponseWriter, r *http.Request) {
	var data BannersData
	if !middleware.SchemaMissing(r) {
		banners, err := h.services.Banners.List(r.Context())
		if err != nil {
			slog.Error("failed to list banners", "error", err)
		}
		data.Banners = banners
	}
	h.render(w, r, http.StatusOK, tmplBanners, h.adminData(r, "Home Banners", "banners", data))
}

// PostBanners handles add, toggle and delete.
func (h *BannersHandler) PostBanners(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteBanners, actions{
		ActionAdd: func(w http.ResponseWriter, r *http.Request) {
			form := service.BannerForm{
				Title:     r.PostFormValue("title"),
				Subtitle:  r.PostFormValue("subtitle"),
				SortOrder: formInt64(r, "sort_order"),
			}
			banner, err := h.services.Banners.Add(r.Context(), form, imageField(r, "image"))
			if verrs, ok := service.AsValidation(err); ok {
				h.flashRejected(w, r, RouteBanners, verrs)
				return
			}
			if err != nil {
				h.failMutation(w, r, RouteBanners, "add the banner", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelInfo, "Banner added",
				map[string]any{"banner_id": banner.ID, "image": banner.ImagePath})
			h.flashSuccess(w, r, RouteBanners, MsgBannerAdded)
		},
		ActionToggle: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			active := formBool(r, fieldEnabled)
			if id <= 0 {
				h.flashError(w, r, RouteBanners, MsgBannerInvalid)
				return
			}
			if err := h.services.Banners.SetActive(r.Context(), id, active); err != nil {
				h.failMutation(w, r, RouteBanners, "update the banner", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelInfo, "Banner visibility updated",
				map[string]any{"banner_id": id, "active": active})
			h.flashSuccess(w, r, RouteBanners, MsgBannerToggled)
		},
		ActionDelete: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, RouteBanners, MsgBannerInvalid)
				return
			}
			row, err := h.services.Banners.Delete(r.Context(), id)
			if errors.Is(err, sql.ErrNoRows) {
				h.flashError(w, r, RouteBanners, MsgBannerNotFound)
				return
			}
			if err != nil {
				h.failMutation(w, r, RouteBanners, "delete the banner", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelWarning, "Banner deleted",
				map[string]any{"banner_id": id, "image": row.ImagePath})
			h.flashSuccess(w, r, RouteBanners, MsgBannerDeleted)
		},
	})
}

// EditBannerForm renders the edit form of banner ?id=.
func (h *BannersHandler) EditBannerForm(w http.ResponseWriter, r *http.Request) {
	id := queryInt64(r, fieldID)
	if id <= 0 {
		h.flashError(w, r, RouteBanners, MsgBannerInvalid)
		return
	}
	form, ok := requireEntityWithRedirect(w, r, h.sessions, h.url(RouteBanners), "banner", MsgBannerNotFound, id,
		func(id int64) (service.BannerForm, error) { return h.services.Banners.Get(r.Context(), id) })
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, tmplBannerEdit, h.adminData(r, "Edit Banner", "banners", BannerEditData{Form: form}))
}

// EditBanner saves the banner edit form.
func (h *BannersHandler) EditBanner(w http.ResponseWriter, r *http.Request) {
	id := queryInt64(r, fieldID)
	if id <= 0 {
		h.flashError(w, r, RouteBanners, MsgBannerInvalid)
		return
	}
	back := bannerEditURL(id)

	h.dispatch(w, r, back, actions{
		ActionSave: func(w http.ResponseWriter, r *http.Request) {
			form := service.BannerForm{
				ID:        id,
				Title:     r.PostFormValue("title"),
				Subtitle:  r.PostFormValue("subtitle"),
				Active:    formBool(r, "is_active"),
				SortOrder: formInt64(r, "sort_order"),
			}
			saved, err := h.services.Banners.Update(r.Context(), form, imageField(r, "image"))
			if verrs, ok := service.AsValidation(err); ok {
				data := h.adminData(r, "Edit Banner", "banners", BannerEditData{Form: saved})
				h.render(w, r, http.StatusUnprocessableEntity, tmplBannerEdit, withErrors(data, verrs))
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				h.flashError(w, r, RouteBanners, MsgBannerNotFound)
				return
			}
			if err != nil {
				h.failMutation(w, r, back, "update the banner", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelInfo, "Banner updated",
				map[string]any{"banner_id": saved.ID, "image": saved.ImagePath})
			h.flashSuccess(w, r, RouteBanners, MsgBannerUpdated)
		},
	})
}

// Gallery renders the gallery screen.
func (h *BannersHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	var data GalleryAdminData
	if !middleware.SchemaMissing(r) {
		images, err := h.services.Gallery.List(r.Context())
		if err != nil {
			slog.Error("failed to list gallery images", "error", err)
		}
		data.Images = images
	}
	h.render(w, r, http.StatusOK, tmplAdminGallery, h.adminData(r, "Gallery", "gallery", data))
}

// PostGallery handles add, toggle and delete.
func (h *BannersHandler) PostGallery(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, RouteAdminGallery, actions{
		ActionAdd: func(w http.ResponseWriter, r *http.Request) {
			image, err := h.services.Gallery.Add(r.Context(), r.PostFormValue("title"), imageField(r, "image"))
			if verrs, ok := service.AsValidation(err); ok {
				h.flashRejected(w, r, RouteAdminGallery, verrs)
				return
			}
			if err != nil {
				h.failMutation(w, r, RouteAdminGallery, "upload the image", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelInfo, "Gallery image uploaded",
				map[string]any{"image_id": image.ID, "image": image.ImagePath})
			h.flashSuccess(w, r, RouteAdminGallery, MsgImageUploaded)
		},
		ActionToggle: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			active := formBool(r, fieldEnabled)
			if id <= 0 {
				h.flashError(w, r, RouteAdminGallery, MsgImageInvalid)
				return
			}
			if err := h.services.Gallery.SetActive(r.Context(), id, active); err != nil {
				h.failMutation(w, r, RouteAdminGallery, "update the image", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelInfo, "Gallery image visibility updated",
				map[string]any{"image_id": id, "active": active})
			h.flashSuccess(w, r, RouteAdminGallery, MsgImageToggled)
		},
		ActionDelete: func(w http.ResponseWriter, r *http.Request) {
			id := formInt64(r, fieldID)
			if id <= 0 {
				h.flashError(w, r, RouteAdminGallery, MsgImageInvalid)
				return
			}
			row, err := h.services.Gallery.Delete(r.Context(), id)
			if errors.Is(err, sql.ErrNoRows) {
				h.flashError(w, r, RouteAdminGallery, MsgImageNotFound)
				return
			}
			if err != nil {
				h.failMutation(w, r, RouteAdminGallery, "delete the image", err)
				return
			}
			h.audit(r, h.services.Events.LogMediaEvent, model.EventLevelWarning, "Gallery image deleted",
				map[string]any{"image_id": id, "image": row.ImagePath})
			h.flashSuccess(w, r, RouteAdminGallery, MsgImageDeleted)
		},
	})
}
