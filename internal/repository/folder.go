package repository

import (
	"context"

	"docvault/internal/model"
)

// FolderRepository defines data access for folders.
type FolderRepository interface {
	// FindOrCreate returns the folder named name under parentID, inserting it if absent.
	// Concurrent calls with the same arguments yield the same row.
	FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error)

	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// ListByVault returns every folder of the vault as a flat list.
	ListByVault(ctx context.Context, vaultID string) ([]model.Folder, error)

	// ListChildren returns the immediate children of parentID (nil = vault root).
	ListChildren(ctx context.Context, vaultID string, parentID *string) ([]model.Folder, error)

	UpdateParent(ctx context.Context, id string, parentID *string) error
}

// VaultRepository resolves vault ownership scopes.
type VaultRepository interface {
	FindByID(ctx context.Context, id string) (*model.Vault, error)
}
