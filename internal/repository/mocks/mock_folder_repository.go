package mocks

import (
	"context"

	"docvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockFolderRepository struct {
	mock.Mock
}

func (m *MockFolderRepository) FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	args := m.Called(ctx, vaultID, parentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderRepository) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderRepository) ListByVault(ctx context.Context, vaultID string) ([]model.Folder, error) {
	args := m.Called(ctx, vaultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepository) ListChildren(ctx context.Context, vaultID string, parentID *string) ([]model.Folder, error) {
	args := m.Called(ctx, vaultID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepository) UpdateParent(ctx context.Context, id string, parentID *string) error {
	return m.Called(ctx, id, parentID).Error(0)
}

type MockVaultRepository struct {
	mock.Mock
}

func (m *MockVaultRepository) FindByID(ctx context.Context, id string) (*model.Vault, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vault), args.Error(1)
}
