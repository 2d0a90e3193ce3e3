// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package menu

import "errors"

var (
	// ErrSelfParent is returned when an item is chosen as its own parent.
	ErrSelfParent = errors.New("A menu item cannot be its own parent.")
	// ErrDescendantParent is returned when an item's descendant is chosen as its parent.
	ErrDescendantParent = errors.New("Invalid parent. A child item cannot be selected as parent.")
)

// childIndex maps each parent id to the ids of its direct children.
func childIndex(items []Item) map[int64][]int64 {
	byParent := make(map[int64][]int64)
	for _, it := range items {
		byParent[it.ParentID] = append(byParent[it.ParentID], it.ID)
	}
	return byParent
}

// Descendants returns the ids of every item below id.
func Descendants(items []Item, id int64) map[int64]bool {
	return collectDescendants(childIndex(items), id, make(map[int64]bool))
}

func collectDescendants(byParent map[int64][]int64, id int64, acc map[int64]bool) map[int64]bool {
	for _, child := range byParent[id] {
		if acc[child] {
			continue
		}
		acc[child] = true
		collectDescendants(byParent, child, acc)
	}
	return acc
}

// ExcludedParents returns id and all its descendants: the items that may not
// become id's parent.
func ExcludedParents(items []Item, id int64) map[int64]bool {
	excluded := Descendants(items, id)
	excluded[id] = true
	return excluded
}

// CheckParent validates moving item id under parentID. New items (id 0) and
// top-level placement (parentID RootID) are always allowed.
func CheckParent(items []Item, id, parentID int64) error {
	if id == 0 || parentID == RootID {
		return nil
	}
	if id == parentID {
		return ErrSelfParent
	}
	if Descendants(items, id)[parentID] {
		return ErrDescendantParent
	}
	return nil
}
