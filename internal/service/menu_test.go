// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/school-cms-go/internal/menu"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
	"github.com/olegiv/school-cms-go/internal/testutil"
)

func createMenuItem(t *testing.T, svc *MenuService, f MenuForm) int64 {
	t.Helper()
	saved, created, err := svc.Save(context.Background(), f)
	if err != nil {
		t.Fatalf("Save(%q): %v", f.Label, err)
	}
	if !created {
		t.Fatalf("Save(%q) did not create an item", f.Label)
	}
	return saved.ID
}

func staticForm(label, page string, parentID, sort int64) MenuForm {
	f := NewMenuForm()
	f.Label = label
	f.LinkValue = page
	f.ParentID = parentID
	f.SortOrder = sort
	return f
}

func findNode(nodes []*menu.Node, label string) *menu.Node {
	for _, n := range nodes {
		if n.Label == label {
			return n
		}
		if found := findNode(n.Children, label); found != nil {
			return found
		}
	}
	return nil
}

func TestNavigation_DefaultTreeWhenEmpty(t *testing.T) {
	svc := NewMenuService(testutil.TestDB(t), "/school")

	nodes, err := svc.Navigation(context.Background(), menu.Current{Page: model.PageFacilities})
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if len(nodes) != 5 {
		t.Fatalf("roots = %d, want 5", len(nodes))
	}

	academics := findNode(nodes, "Academics")
	if academics == nil || len(academics.Children) != 2 {
		t.Fatalf("Academics = %+v, want 2 children", academics)
	}
	if !academics.Active {
		t.Error("Academics should be active when Facilities is served")
	}
	if academics.Href != menu.Placeholder {
		t.Errorf("Academics href = %q, want placeholder", academics.Href)
	}
	if got := academics.Children[0].Href; got != "/school/facilities" {
		t.Errorf("Facilities href = %q, want /school/facilities", got)
	}
	if findNode(nodes, "Gallery").Active {
		t.Error("Gallery should not be active")
	}
}

func TestNavigation_DisabledParentHidesChildren(t *testing.T) {
	svc := NewMenuService(testutil.TestDB(t), "")
	ctx := context.Background()

	parent := createMenuItem(t, svc, staticForm("About", model.PageAbout, 0, 1))
	createMenuItem(t, svc, staticForm("Facilities", model.PageFacilities, parent, 1))
	createMenuItem(t, svc, staticForm("Gallery", model.PageGallery, 0, 2))

	if err := svc.SetEnabled(ctx, parent, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}

	nodes, err := svc.Navigation(ctx, menu.Current{})
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	// The child of a disabled item is not re-attached to the root.
	if menu.Count(nodes) != 1 || nodes[0].Label != "Gallery" {
		t.Errorf("navigation has %d nodes, want only Gallery", menu.Count(nodes))
	}
}

func TestNavigation_CustomPageLinks(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewMenuService(db, "")
	ctx := context.Background()
	q := store.New(db)

	page, err := q.CreateCustomPage(ctx, store.CustomPageParams{
		Title: "Fees", Slug: "fees", Content: "Fee structure", IsEnabled: true, SortOrder: 1, At: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateCustomPage: %v", err)
	}

	f := NewMenuForm()
	f.Label = "Fees"
	f.Type = model.MenuTypeCustomPage
	f.PageID = page.ID
	createMenuItem(t, svc, f)

	nodes, err := svc.Navigation(ctx, menu.Current{Page: model.PageCustom, Slug: "fees"})
	if err != nil {
		t.Fatalf("Navigation: %v", err)
	}
	if nodes[0].Href != "/page/fees" || !nodes[0].Active {
		t.Errorf("node = (%q, active %v), want (/page/fees, true)", nodes[0].Href, nodes[0].Active)
	}

	if err := q.SetCustomPageEnabled(ctx, page.ID, false, time.Now().UTC()); err != nil {
		t.Fatalf("SetCustomPageEnabled: %v", err)
	}
	nodes, _ = svc.Navigation(ctx, menu.Current{})
	if nodes[0].Href != menu.Placeholder {
		t.Errorf("href for disabled page = %q, want %q", nodes[0].Href, menu.Placeholder)
	}
}

func TestMenuSave_Validation(t *testing.T) {
	svc := NewMenuService(testutil.TestDB(t), "")

	tests := []struct {
		name  string
		form  func() MenuForm
		field string
		want  string
	}{
		{"label required", func() MenuForm {
			return staticForm("  ", model.PageHome, 0, 1)
		}, "label", MsgMenuLabelRequired},
		{"unknown type", func() MenuForm {
			f := staticForm("X", model.PageHome, 0, 1)
			f.Type = "widget"
			return f
		}, "item_type", MsgMenuTypeInvalid},
		{"unknown static page", func() MenuForm {
			return staticForm("X", "index.php", 0, 1)
		}, "link_value", MsgMenuStaticInvalid},
		{"missing custom page", func() MenuForm {
			f := staticForm("X", "", 0, 1)
			f.Type = model.MenuTypeCustomPage
			f.PageID = 99
			return f
		}, "page_id", MsgMenuPageInvalid},
		{"empty custom path", func() MenuForm {
			f := staticForm("X", "", 0, 1)
			f.Type = model.MenuTypeCustomPath
			return f
		}, "link_value", MsgMenuPathRequired},
		{"external without scheme", func() MenuForm {
			f := staticForm("X", "www.example.com", 0, 1)
			f.Type = model.MenuTypeExternal
			return f
		}, "link_value", MsgMenuExternalInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Save(context.Background(), tt.form())
			verrs, ok := AsValidation(err)
			if !ok {
				t.Fatalf("Save error = %v, want ValidationErrors", err)
			}
			if got := verrs.Fields()[tt.field]; got != tt.want {
				t.Errorf("%s message = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestMenuSave_RejectsDescendantParent(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewMenuService(db, "")
	ctx := context.Background()

	root := createMenuItem(t, svc, staticForm("Root", model.PageHome, 0, 1))
	child := createMenuItem(t, svc, staticForm("Child", model.PageAbout, root, 1))
	grandchild := createMenuItem(t, svc, staticForm("Grandchild", model.PageGallery, child, 1))

	f, err := svc.Get(ctx, root)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	f.ParentID = grandchild
	_, _, err = svc.Save(ctx, f)
	verrs, ok := AsValidation(err)
	if !ok || verrs.Fields()["parent_id"] != menu.ErrDescendantParent.Error() {
		t.Fatalf("Save = %v, want descendant parent error", err)
	}

	f.ParentID = root
	_, _, err = svc.Save(ctx, f)
	verrs, ok = AsValidation(err)
	if !ok || verrs.Fields()["parent_id"] != menu.ErrSelfParent.Error() {
		t.Fatalf("Save = %v, want self parent error", err)
	}

	stored, err := svc.Get(ctx, root)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.ParentID != menu.RootID {
		t.Errorf("parent after rejected saves = %d, want root", stored.ParentID)
	}
}

func TestMenuSave_UpdateAndDefaultIcon(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewMenuService(db, "")
	ctx := context.Background()

	f := staticForm("Home", model.PageHome, 0, 0)
	f.IconClass = ""
	id := createMenuItem(t, svc, f)

	stored, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.IconClass != model.DefaultMenuIcon {
		t.Errorf("icon = %q, want %q", stored.IconClass, model.DefaultMenuIcon)
	}
	if stored.SortOrder != 1 {
		t.Errorf("sort order = %d, want 1", stored.SortOrder)
	}

	stored.Label = "Start"
	stored.Type = model.MenuTypeExternal
	stored.LinkValue = "https://example.com"
	if _, created, err := svc.Save(ctx, stored); err != nil || created {
		t.Fatalf("Save update = (created %v, %v)", created, err)
	}
	updated, _ := svc.Get(ctx, id)
	if updated.Label != "Start" || updated.LinkValue != "https://example.com" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestMenuDelete_Cascades(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewMenuService(db, "")
	ctx := context.Background()

	root := createMenuItem(t, svc, staticForm("Root", model.PageHome, 0, 1))
	createMenuItem(t, svc, staticForm("Child", model.PageAbout, root, 1))
	createMenuItem(t, svc, staticForm("Other", model.PageGallery, 0, 2))

	if err := svc.Delete(ctx, root); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	admin, err := svc.Admin(ctx, 0)
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if len(admin.Items) != 1 || admin.Items[0].Label != "Other" {
		t.Errorf("items after delete = %+v, want only Other", admin.Items)
	}
	if _, err := svc.Get(ctx, root); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get deleted = %v, want sql.ErrNoRows", err)
	}
}

func TestAdmin_ParentOptionsExcludeSubtree(t *testing.T) {
	svc := NewMenuService(testutil.TestDB(t), "")
	ctx := context.Background()

	root := createMenuItem(t, svc, staticForm("Root", model.PageHome, 0, 1))
	child := createMenuItem(t, svc, staticForm("Child", model.PageAbout, root, 1))
	other := createMenuItem(t, svc, staticForm("Other", model.PageGallery, 0, 2))

	admin, err := svc.Admin(ctx, root)
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if len(admin.Flat) != 3 {
		t.Fatalf("flat = %d, want 3", len(admin.Flat))
	}
	if admin.Flat[1].ID != child || admin.Flat[1].Level != 1 {
		t.Errorf("flat[1] = (%d, level %d), want child at level 1", admin.Flat[1].ID, admin.Flat[1].Level)
	}
	if len(admin.Parents) != 1 || admin.Parents[0].ID != other {
		t.Errorf("parents = %+v, want only Other", admin.Parents)
	}
}
