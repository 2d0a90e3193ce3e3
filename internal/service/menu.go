// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/school-cms-go/internal/menu"
	"github.com/olegiv/school-cms-go/internal/model"
	"github.com/olegiv/school-cms-go/internal/store"
)

// Menu form messages.
const (
	MsgMenuLabelRequired   = "Menu label is required."
	MsgMenuTypeInvalid     = "Invalid menu type selected."
	MsgMenuStaticInvalid   = "Select a valid static page."
	MsgMenuPageInvalid     = "Select a valid custom page."
	MsgMenuPathRequired    = "Custom relative path is required."
	MsgMenuExternalInvalid = "External URL must start with http:// or https://"
)

// MenuForm is the admin menu item form.
type MenuForm struct {
	ID        int64
	ParentID  int64
	Label     string
	Type      string
	LinkValue string // static page id, relative path or external URL, by Type
	PageID    int64
	IconClass string

	OpenInNewTab bool
	Enabled      bool
	SortOrder    int64
}

// NewMenuForm returns the blank "add item" form.
func NewMenuForm() MenuForm {
	return MenuForm{
		Type:      model.MenuTypeStatic,
		LinkValue: model.PageHome,
		IconClass: model.DefaultMenuIcon,
		Enabled:   true,
		SortOrder: 1,
	}
}

// MenuFormFromItem fills the form for editing it.
func MenuFormFromItem(it menu.Item) MenuForm {
	return MenuForm{
		ID:           it.ID,
		ParentID:     it.ParentID,
		Label:        it.Label,
		Type:         it.Type,
		LinkValue:    it.LinkValue,
		PageID:       it.PageID,
		IconClass:    it.IconClass,
		OpenInNewTab: it.OpenInNewTab,
		Enabled:      it.Enabled,
		SortOrder:    it.SortOrder,
	}
}

// AdminMenu is the menu builder listing.
type AdminMenu struct {
	Items   []menu.Item
	Flat    []menu.FlatNode
	Parents []menu.FlatNode // parent choices for the item being edited
	Pages   []store.CustomPage
}

// MenuService composes navigation and manages menu items.
type MenuService struct {
	queries  *store.Queries
	basePath string
}

// NewMenuService creates a new MenuService. basePath is the site prefix
// applied to relative links.
func NewMenuService(db *sql.DB, basePath string) *MenuService {
	return &MenuService{
		queries:  store.New(db),
		basePath: basePath,
	}
}

func itemFromRow(row store.MenuItem) menu.Item {
	it := menu.Item{
		ID:           row.ID,
		Label:        row.Label,
		Type:         row.ItemType,
		LinkValue:    row.LinkValue.String,
		IconClass:    row.IconClass.String,
		OpenInNewTab: row.OpenInNewTab,
		Enabled:      row.IsEnabled,
		SortOrder:    row.SortOrder,
	}
	if row.ParentID.Valid {
		it.ParentID = row.ParentID.Int64
	}
	if row.PageID.Valid {
		it.PageID = row.PageID.Int64
	}
	return it
}

func (s *MenuService) items(ctx context.Context) ([]menu.Item, error) {
	rows, err := s.queries.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	items := make([]menu.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFromRow(row))
	}
	return items, nil
}

func (s *MenuService) resolver(ctx context.Context) (*menu.Resolver, []store.CustomPage, error) {
	pages, err := s.queries.ListCustomPages(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing custom pages: %w", err)
	}
	refs := make(map[int64]menu.PageRef, len(pages))
	for _, p := range pages {
		refs[p.ID] = menu.PageRef{Slug: p.Slug, Enabled: p.IsEnabled}
	}
	return menu.NewResolver(s.basePath, refs), pages, nil
}

// Navigation returns the public navigation tree with links resolved and
// the branch of cur marked active. While the menu table is empty the
// default tree is served. Children of a disabled item are not shown.
func (s *MenuService) Navigation(ctx context.Context, cur menu.Current) ([]*menu.Node, error) {
	items, err := s.items(ctx)
	if err != nil {
		return s.defaultNavigation(cur), err
	}
	r, _, err := s.resolver(ctx)
	if err != nil {
		return s.defaultNavigation(cur), err
	}
	if len(items) == 0 {
		items = menu.DefaultItems()
	}

	enabled := make(map[int64]menu.Item, len(items))
	for _, it := range items {
		if it.Enabled {
			enabled[it.ID] = it
		}
	}
	nodes := menu.Build(enabled)
	r.Decorate(nodes, cur)
	return nodes, nil
}

func (s *MenuService) defaultNavigation(cur menu.Current) []*menu.Node {
	nodes := menu.Build(menu.Index(menu.DefaultItems()))
	menu.NewResolver(s.basePath, nil).Decorate(nodes, cur)
	return nodes
}

// Admin returns every menu item as a flattened tree, with the parent
// choices for the item editID (0 when adding).
func (s *MenuService) Admin(ctx context.Context, editID int64) (AdminMenu, error) {
	items, err := s.items(ctx)
	if err != nil {
		return AdminMenu{}, err
	}
	r, pages, err := s.resolver(ctx)
	if err != nil {
		return AdminMenu{}, err
	}

	nodes := menu.Build(menu.Index(items))
	r.Decorate(nodes, menu.Current{})
	flat := menu.Flatten(nodes)

	return AdminMenu{
		Items:   items,
		Flat:    flat,
		Parents: ParentOptions(flat, items, editID),
		Pages:   pages,
	}, nil
}

// ParentOptions filters flat to the items that may become the parent of
// id: the item itself and its descendants are excluded.
func ParentOptions(flat []menu.FlatNode, items []menu.Item, id int64) []menu.FlatNode {
	if id == 0 {
		return flat
	}
	excluded := menu.ExcludedParents(items, id)
	out := make([]menu.FlatNode, 0, len(flat))
	for _, n := range flat {
		if !excluded[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// Get returns the item id as a form.
func (s *MenuService) Get(ctx context.Context, id int64) (MenuForm, error) {
	row, err := s.queries.GetMenuItem(ctx, id)
	if err != nil {
		return MenuForm{}, err
	}
	return MenuFormFromItem(itemFromRow(row)), nil
}

func (f MenuForm) normalized() MenuForm {
	f.Label = strings.TrimSpace(f.Label)
	f.Type = strings.TrimSpace(f.Type)
	f.LinkValue = strings.TrimSpace(f.LinkValue)
	f.IconClass = strings.TrimSpace(f.IconClass)
	if f.ParentID < 0 {
		f.ParentID = 0
	}
	if f.PageID < 0 {
		f.PageID = 0
	}
	if f.SortOrder < 1 {
		f.SortOrder = 1
	}
	return f
}

// validate checks the form against the stored items. It never writes.
func (s *MenuService) validate(ctx context.Context, f MenuForm, items []menu.Item) (ValidationErrors, error) {
	var verrs ValidationErrors
	if f.Label == "" {
		verrs.Add("label", MsgMenuLabelRequired)
	}
	if !model.IsValidMenuType(f.Type) {
		verrs.Add("item_type", MsgMenuTypeInvalid)
	}
	if f.ID > 0 && f.ParentID == f.ID {
		verrs.Add("parent_id", menu.ErrSelfParent.Error())
	}

	switch f.Type {
	case model.MenuTypeStatic:
		if _, ok := model.LookupStaticPage(f.LinkValue); !ok {
			verrs.Add("link_value", MsgMenuStaticInvalid)
		}
	case model.MenuTypeCustomPage:
		ok := false
		if f.PageID > 0 {
			_, err := s.queries.GetCustomPageByID(ctx, f.PageID)
			switch {
			case err == nil:
				ok = true
			case !errors.Is(err, sql.ErrNoRows):
				return nil, fmt.Errorf("checking custom page: %w", err)
			}
		}
		if !ok {
			verrs.Add("page_id", MsgMenuPageInvalid)
		}
	case model.MenuTypeCustomPath:
		if f.LinkValue == "" {
			verrs.Add("link_value", MsgMenuPathRequired)
		}
	case model.MenuTypeExternal:
		if !menu.IsAbsoluteURL(f.LinkValue) {
			verrs.Add("link_value", MsgMenuExternalInvalid)
		}
	}

	if f.ParentID != menu.RootID && f.ParentID != f.ID {
		if err := menu.CheckParent(items, f.ID, f.ParentID); err != nil {
			verrs.Add("parent_id", err.Error())
		} else if _, ok := menu.Index(items)[f.ParentID]; !ok {
			verrs.Add("parent_id", menu.ErrDescendantParent.Error())
		}
	}
	return verrs, nil
}

func (f MenuForm) params() store.MenuItemParams {
	p := store.MenuItemParams{
		Label:        f.Label,
		ItemType:     f.Type,
		OpenInNewTab: f.OpenInNewTab,
		IsEnabled:    f.Enabled,
		SortOrder:    f.SortOrder,
	}
	if f.ParentID > 0 {
		p.ParentID = sql.NullInt64{Int64: f.ParentID, Valid: true}
	}
	if f.Type == model.MenuTypeCustomPage {
		p.PageID = sql.NullInt64{Int64: f.PageID, Valid: true}
	} else if f.LinkValue != "" {
		p.LinkValue = sql.NullString{String: f.LinkValue, Valid: true}
	}
	icon := f.IconClass
	if icon == "" {
		icon = model.DefaultMenuIcon
	}
	p.IconClass = sql.NullString{String: icon, Valid: true}
	return p
}

// Save validates f and creates or updates the item. It reports whether a
// new item was created. Rejected forms return ValidationErrors and leave
// the stored item, including its parent, unchanged.
func (s *MenuService) Save(ctx context.Context, f MenuForm) (MenuForm, bool, error) {
	f = f.normalized()

	items, err := s.items(ctx)
	if err != nil {
		return f, false, err
	}
	verrs, err := s.validate(ctx, f, items)
	if err != nil {
		return f, false, err
	}
	if len(verrs) > 0 {
		return f, false, verrs
	}

	if f.ID > 0 {
		if err := s.queries.UpdateMenuItem(ctx, f.ID, f.params()); err != nil {
			return f, false, fmt.Errorf("updating menu item: %w", err)
		}
		return f, false, nil
	}

	created, err := s.queries.CreateMenuItem(ctx, f.params(), time.Now().UTC())
	if err != nil {
		return f, false, fmt.Errorf("creating menu item: %w", err)
	}
	f.ID = created.ID
	return f, true, nil
}

// SetEnabled shows or hides an item.
func (s *MenuService) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	return s.queries.SetMenuItemEnabled(ctx, id, enabled)
}

// Delete removes an item together with its descendants.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteMenuItem(ctx, id)
}
