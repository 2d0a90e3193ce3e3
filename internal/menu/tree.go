// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package menu turns flat menu item rows into a navigable tree: it builds the
// forest, resolves each node's link and marks the branch that leads to the
// page being served. Everything here is pure and rebuilt per request.
package menu

import (
	"sort"
)

// RootID is the parent id of top-level items.
const RootID int64 = 0

// Item is one menu row as the tree builder sees it.
type Item struct {
	ID           int64
	ParentID     int64 // RootID for top-level items
	Label        string
	Type         string
	LinkValue    string
	PageID       int64 // 0 when unset
	IconClass    string
	OpenInNewTab bool
	Enabled      bool
	SortOrder    int64
}

// Node is an Item placed in the tree.
type Node struct {
	Item
	Children []*Node
	Href     string
	Active   bool
}

// HasChildren reports whether the node renders as a dropdown.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Build arranges items into a forest ordered by (SortOrder, ID) at every level.
//
// Items whose parent is not in the input are dropped together with their
// subtree: an enabled child of a disabled parent does not move up a level.
func Build(items map[int64]Item) []*Node {
	byParent := groupByParent(items)
	return buildLevel(byParent, RootID)
}

// groupByParent indexes items by parent id with each group sorted.
func groupByParent(items map[int64]Item) map[int64][]Item {
	byParent := make(map[int64][]Item)
	for _, it := range items {
		byParent[it.ParentID] = append(byParent[it.ParentID], it)
	}
	for _, group := range byParent {
		sortItems(group)
	}
	return byParent
}

func buildLevel(byParent map[int64][]Item, parentID int64) []*Node {
	group := byParent[parentID]
	if len(group) == 0 {
		return nil
	}
	nodes := make([]*Node, 0, len(group))
	for _, it := range group {
		nodes = append(nodes, &Node{
			Item:     it,
			Children: buildLevel(byParent, it.ID),
		})
	}
	return nodes
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].ID < items[j].ID
	})
}

// Index returns items keyed by id.
func Index(items []Item) map[int64]Item {
	m := make(map[int64]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}

// Count returns the number of nodes in the forest.
func Count(nodes []*Node) int {
	n := 0
	for _, node := range nodes {
		n += 1 + Count(node.Children)
	}
	return n
}

// FlatNode is a node with its depth, used for admin listings and parent pickers.
type FlatNode struct {
	*Node
	Level int
}

// Flatten lists the forest depth-first in display order.
func Flatten(nodes []*Node) []FlatNode {
	return flattenInto(nil, nodes, 0)
}

func flattenInto(acc []FlatNode, nodes []*Node, level int) []FlatNode {
	for _, n := range nodes {
		acc = append(acc, FlatNode{Node: n, Level: level})
		acc = flattenInto(acc, n.Children, level+1)
	}
	return acc
}
