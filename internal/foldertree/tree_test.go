package foldertree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
)

func ptr(s string) *string { return &s }

func fixture() *Tree {
	return New([]model.Folder{
		{ID: "tax", Name: "Tax"},
		{ID: "y2025", Name: "2025", ParentID: ptr("tax")},
		{ID: "w2", Name: "W2 Form", ParentID: ptr("y2025")},
		{ID: "orphan", Name: "Orphan", ParentID: ptr("gone")},
		{ID: "loop-a", Name: "A", ParentID: ptr("loop-b")},
		{ID: "loop-b", Name: "B", ParentID: ptr("loop-a")},
	})
}

func TestPathOf(t *testing.T) {
	tree := fixture()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "root folder", id: "tax", want: "Tax"},
		{name: "nested", id: "w2", want: "Tax/2025/W2 Form"},
		{name: "missing parent truncates", id: "orphan", want: "Orphan"},
		{name: "unknown folder", id: "nope", want: ""},
		{name: "cycle stops", id: "loop-a", want: "B/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.PathOf(tt.id))
		})
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"Tax", "2025", "W2 Form"}, fixture().Segments("w2"))
}

func TestGroupByFolder(t *testing.T) {
	tree := fixture()
	docs := []model.Document{
		{ID: "1", Name: "w2.pdf", FolderID: ptr("w2")},
		{ID: "2", Name: "scan.png"},
		{ID: "3", Name: "w2-copy.pdf", FolderID: ptr("w2")},
		{ID: "4", Name: "empty-folder-ref", FolderID: ptr("")},
	}

	groups := tree.GroupByFolder(docs, "My Vault")
	require.Len(t, groups, 2)

	root := groups[RootKey]
	assert.Equal(t, "My Vault", root.Path)
	assert.Len(t, root.Documents, 2)

	w2 := groups["w2"]
	assert.Equal(t, "Tax/2025/W2 Form", w2.Path)
	require.Len(t, w2.Documents, 2)
	assert.Equal(t, "1", w2.Documents[0].ID)
	assert.Equal(t, "3", w2.Documents[1].ID)
}
