package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/singleflight"

	"docvault/internal/model"
	"docvault/internal/repository"
)

const maxAncestorLookups = 1024

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrCircularMove   = errors.New("folder cannot be moved under itself or a descendant")
	ErrCrossVaultMove = errors.New("folder cannot be moved to another vault")
	ErrVaultNotFound  = errors.New("vault not found")

	// ErrFolderOtherVault is returned when a document is filed into a folder of another vault.
	ErrFolderOtherVault = errors.New("folder belongs to another vault")
)

// FolderService is the Folder Service collaborator.
type FolderService interface {
	// List returns the vault's root folders, or every folder when includeAll is set.
	List(ctx context.Context, vaultID string, includeAll bool) ([]model.Folder, error)

	// FindOrCreate returns the folder named name under parentID (nil = vault root), creating it if absent.
	FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error)

	Get(ctx context.Context, id string) (*model.Folder, error)

	// Move re-parents a folder. Moving under itself or one of its descendants is rejected.
	Move(ctx context.Context, folderID string, newParentID *string) error
}

type folderService struct {
	repo repository.FolderRepository
}

// NewFolderService constructs a FolderService over repo.
func NewFolderService(repo repository.FolderRepository) FolderService {
	return &folderService{repo: repo}
}

func (s *folderService) List(ctx context.Context, vaultID string, includeAll bool) ([]model.Folder, error) {
	if vaultID == "" {
		return nil, ErrIDRequired
	}
	if includeAll {
		return s.repo.ListByVault(ctx, vaultID)
	}
	return s.repo.ListChildren(ctx, vaultID, nil)
}

func (s *folderService) FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	if vaultID == "" {
		return nil, ErrIDRequired
	}
	name = strings.TrimSpace(name)
	if err := validation.Validate(name, nameFieldRules...); err != nil {
		return nil, fmt.Errorf("%w: folder name: %v", ErrValidation, err)
	}
	if parentID != nil {
		parent, err := s.Get(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.VaultID != vaultID {
			return nil, fmt.Errorf("%w: parent %s belongs to another vault", ErrValidation, *parentID)
		}
	}
	return s.repo.FindOrCreate(ctx, vaultID, parentID, name)
}

func (s *folderService) Get(ctx context.Context, id string) (*model.Folder, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *folderService) Move(ctx context.Context, folderID string, newParentID *string) error {
	folder, err := s.Get(ctx, folderID)
	if err != nil {
		return err
	}
	if newParentID != nil {
		if err := s.validateNoCircularReference(ctx, folder, *newParentID); err != nil {
			return err
		}
	}
	if err := s.repo.UpdateParent(ctx, folderID, newParentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	return nil
}

// validateNoCircularReference walks up from the new parent and fails if it reaches folder.
func (s *folderService) validateNoCircularReference(ctx context.Context, folder *model.Folder, newParentID string) error {
	currentID := newParentID
	for range maxAncestorLookups {
		if currentID == folder.ID {
			return ErrCircularMove
		}
		current, err := s.Get(ctx, currentID)
		if err != nil {
			return err
		}
		if current.VaultID != folder.VaultID {
			return ErrCrossVaultMove
		}
		if current.ParentID == nil {
			return nil
		}
		currentID = *current.ParentID
	}
	return ErrCircularMove
}

type dedupFolderService struct {
	FolderService
	group singleflight.Group
}

// NewDedupFolderService collapses concurrent FindOrCreate calls for the same vault, parent and
// name into one call on inner. Callers each receive their own copy of the folder.
func NewDedupFolderService(inner FolderService) FolderService {
	return &dedupFolderService{FolderService: inner}
}

func (s *dedupFolderService) FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	parent := ""
	if parentID != nil {
		parent = *parentID
	}
	key := vaultID + "\x00" + parent + "\x00" + strings.TrimSpace(name)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.FolderService.FindOrCreate(ctx, vaultID, parentID, name)
	})
	if err != nil {
		return nil, err
	}
	f := *v.(*model.Folder)
	return &f, nil
}

// VaultService resolves vault ownership scopes.
type VaultService interface {
	Get(ctx context.Context, id string) (*model.Vault, error)
}

type vaultService struct {
	repo repository.VaultRepository
}

func NewVaultService(repo repository.VaultRepository) VaultService {
	return &vaultService{repo: repo}
}

func (s *vaultService) Get(ctx context.Context, id string) (*model.Vault, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVaultNotFound
		}
		return nil, err
	}
	return v, nil
}
