// Package foldertree derives folder paths from parent links and groups documents by folder.
package foldertree

import (
	"slices"
	"strings"

	"docvault/internal/model"
)

// RootKey is the group key used for documents that live at the vault root.
const RootKey = "root"

// Separator joins path segments.
const Separator = "/"

// Tree is an immutable index over a vault's flat folder list.
type Tree struct {
	byID map[string]model.Folder
}

func New(folders []model.Folder) *Tree {
	byID := make(map[string]model.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}
	return &Tree{byID: byID}
}

// Folder returns the folder with id, if known.
func (t *Tree) Folder(id string) (model.Folder, bool) {
	f, ok := t.byID[id]
	return f, ok
}

// Segments returns folder names from the root down to folderID.
// A parent that cannot be resolved ends the walk, so the result starts at the
// last resolvable ancestor. A parent cycle ends the walk the same way.
func (t *Tree) Segments(folderID string) []string {
	var names []string
	seen := make(map[string]struct{})
	id := folderID
	for {
		if _, loop := seen[id]; loop {
			break
		}
		f, ok := t.byID[id]
		if !ok {
			break
		}
		seen[id] = struct{}{}
		names = append(names, f.Name)
		if f.ParentID == nil {
			break
		}
		id = *f.ParentID
	}
	slices.Reverse(names)
	return names
}

// PathOf returns the materialized path of folderID, e.g. "Tax/2025/W2 Form".
func (t *Tree) PathOf(folderID string) string {
	return strings.Join(t.Segments(folderID), Separator)
}

// Group is one folder's slice of a document collection.
type Group struct {
	Path      string           `json:"path"`
	Documents []model.Document `json:"documents"`
}

// GroupByFolder partitions docs by folder, keyed by folder id or RootKey.
// Root-level documents get rootLabel as their path. Document order within a group is kept.
func (t *Tree) GroupByFolder(docs []model.Document, rootLabel string) map[string]Group {
	out := make(map[string]Group)
	for _, d := range docs {
		key, path := RootKey, rootLabel
		if d.FolderID != nil && *d.FolderID != "" {
			key = *d.FolderID
			path = t.PathOf(key)
		}
		g, ok := out[key]
		if !ok {
			g = Group{Path: path}
		}
		g.Documents = append(g.Documents, d)
		out[key] = g
	}
	return out
}
