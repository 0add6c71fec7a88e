package repository

import (
	"context"
	"time"

	"docvault/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
// Update methods return sql.ErrNoRows when no row matched the id.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByVault returns the documents of a vault matching the filter, newest first.
	ListByVault(ctx context.Context, vaultID string, f DocumentFilter) ([]model.Document, error)

	UpdateName(ctx context.Context, id, name string) error
	UpdateExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error
	UpdateDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error
	UpdateFolder(ctx context.Context, id string, folderID *string) error
	UpdateLabels(ctx context.Context, id string, labels []string) error

	// Confirm moves a pending document to confirmed and stores usage accounting.
	Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// DocumentFilter narrows ListByVault.
// Recursive ignores FolderID and returns every document in the vault.
// Otherwise a nil FolderID selects root-level documents.
type DocumentFilter struct {
	FolderID  *string
	Recursive bool
}
