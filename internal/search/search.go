package search

import (
	"docvault/internal/foldertree"
	"docvault/internal/model"
)

// Result is the outcome of a vault-wide search.
type Result struct {
	Documents       []model.Document            `json:"documents"`
	Folders         []model.Folder              `json:"folders"`
	GroupedByFolder map[string]foldertree.Group `json:"grouped_by_folder"`
}

// Run matches query against every document and folder name of a vault and groups the
// matched documents by folder. rootLabel names the group of root-level documents.
// An empty query matches nothing, since search mode is off without one.
func Run(docs []model.Document, folders []model.Folder, query, rootLabel string) Result {
	res := Result{
		Documents:       []model.Document{},
		Folders:         []model.Folder{},
		GroupedByFolder: map[string]foldertree.Group{},
	}
	q := ParseQuery(query)
	if q.IsEmpty() {
		return res
	}
	for _, d := range docs {
		if Matches(d.Name, d.Labels, q) {
			res.Documents = append(res.Documents, d)
		}
	}
	for _, f := range folders {
		if Matches(f.Name, nil, q) {
			res.Folders = append(res.Folders, f)
		}
	}
	res.GroupedByFolder = foldertree.New(folders).GroupByFolder(res.Documents, rootLabel)
	return res
}
