// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import "github.com/olegiv/school-cms-go/internal/model"

// DefaultItems is the navigation served while the menu table is empty.
// The items go through Build and the Resolver like stored rows.
func DefaultItems() []Item {
	return []Item{
		{ID: 1, Label: "Home", Type: model.MenuTypeStatic, LinkValue: model.PageHome, IconClass: "fa-solid fa-house", Enabled: true, SortOrder: 1},
		{ID: 2, Label: "About", Type: model.MenuTypeStatic, LinkValue: model.PageAbout, IconClass: "fa-solid fa-school", Enabled: true, SortOrder: 2},
		{ID: 3, Label: "Academics", Type: model.MenuTypeCustomPath, LinkValue: Placeholder, IconClass: "fa-solid fa-book-open", Enabled: true, SortOrder: 3},
		{ID: 4, ParentID: 3, Label: "Facilities", Type: model.MenuTypeStatic, LinkValue: model.PageFacilities, IconClass: "fa-solid fa-flask", Enabled: true, SortOrder: 1},
		{ID: 5, ParentID: 3, Label: "Infrastructure", Type: model.MenuTypeStatic, LinkValue: model.PageInfrastructure, IconClass: "fa-solid fa-building", Enabled: true, SortOrder: 2},
		{ID: 6, Label: "Gallery", Type: model.MenuTypeStatic, LinkValue: model.PageGallery, IconClass: "fa-regular fa-images", Enabled: true, SortOrder: 4},
		{ID: 7, Label: "Connect", Type: model.MenuTypeCustomPath, LinkValue: Placeholder, IconClass: "fa-solid fa-address-book", Enabled: true, SortOrder: 5},
		{ID: 8, ParentID: 7, Label: "Admission Inquiry", Type: model.MenuTypeStatic, LinkValue: model.PageAdmission, IconClass: "fa-solid fa-file-signature", Enabled: true, SortOrder: 1},
		{ID: 9, ParentID: 7, Label: "Contact", Type: model.MenuTypeStatic, LinkValue: model.PageContact, IconClass: "fa-solid fa-phone", Enabled: true, SortOrder: 2},
	}
}
