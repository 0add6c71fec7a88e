package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/foldertree"
	"docvault/internal/model"
)

func TestRun(t *testing.T) {
	taxID := "tax"
	folders := []model.Folder{
		{ID: taxID, Name: "Tax Invoices"},
		{ID: "home", Name: "Home"},
	}
	docs := []model.Document{
		{ID: "1", Name: "2024 Invoice Final", Labels: []string{"draft"}, FolderID: &taxID},
		{ID: "2", Name: "2024 Invoice Paid", FolderID: &taxID},
		{ID: "3", Name: "invoice scan"},
		{ID: "4", Name: "lease"},
	}

	res := Run(docs, folders, "invoice -draft", "My Vault")

	assert.Equal(t, []string{"2", "3"}, ids(res.Documents))
	require.Len(t, res.Folders, 1)
	assert.Equal(t, taxID, res.Folders[0].ID)

	require.Len(t, res.GroupedByFolder, 2)
	assert.Equal(t, "Tax Invoices", res.GroupedByFolder[taxID].Path)
	assert.Equal(t, "My Vault", res.GroupedByFolder[foldertree.RootKey].Path)
}

func TestRun_EmptyQuery(t *testing.T) {
	res := Run([]model.Document{{ID: "1", Name: "x"}}, nil, "   ", "My Vault")
	assert.Empty(t, res.Documents)
	assert.Empty(t, res.Folders)
	assert.Empty(t, res.GroupedByFolder)
}
