package mocks

import (
	"context"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByVault(ctx context.Context, vaultID string, f repository.DocumentFilter) ([]model.Document, error) {
	args := m.Called(ctx, vaultID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateName(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockDocumentRepository) UpdateExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return m.Called(ctx, id, date, tracking).Error(0)
}

func (m *MockDocumentRepository) UpdateDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return m.Called(ctx, id, date, tracking).Error(0)
}

func (m *MockDocumentRepository) UpdateFolder(ctx context.Context, id string, folderID *string) error {
	return m.Called(ctx, id, folderID).Error(0)
}

func (m *MockDocumentRepository) UpdateLabels(ctx context.Context, id string, labels []string) error {
	return m.Called(ctx, id, labels).Error(0)
}

func (m *MockDocumentRepository) Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error {
	return m.Called(ctx, id, opts).Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
