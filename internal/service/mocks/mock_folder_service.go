package mocks

import (
	"context"

	"docvault/internal/model"
	"docvault/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFolderService struct {
	mock.Mock
}

var _ service.FolderService = (*MockFolderService)(nil)

func (m *MockFolderService) List(ctx context.Context, vaultID string, includeAll bool) ([]model.Folder, error) {
	args := m.Called(ctx, vaultID, includeAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderService) FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	args := m.Called(ctx, vaultID, parentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Get(ctx context.Context, id string) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Move(ctx context.Context, folderID string, newParentID *string) error {
	return m.Called(ctx, folderID, newParentID).Error(0)
}

type MockVaultService struct {
	mock.Mock
}

var _ service.VaultService = (*MockVaultService)(nil)

func (m *MockVaultService) Get(ctx context.Context, id string) (*model.Vault, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vault), args.Error(1)
}
