package mocks

import (
	"context"
	"io"
	"time"

	"docvault/internal/model"
	"docvault/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

var _ service.DocumentService = (*MockDocumentService)(nil)

func (m *MockDocumentService) Upload(ctx context.Context, vaultID string, r io.Reader, filename, contentType string, size int64) (*model.Document, error) {
	args := m.Called(ctx, vaultID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, doc *model.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, vaultID string, opts service.ListOptions) ([]model.Document, error) {
	args := m.Called(ctx, vaultID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Rename(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockDocumentService) SetExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return m.Called(ctx, id, date, tracking).Error(0)
}

func (m *MockDocumentService) SetDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return m.Called(ctx, id, date, tracking).Error(0)
}

func (m *MockDocumentService) SetFolder(ctx context.Context, id string, folderID *string) error {
	return m.Called(ctx, id, folderID).Error(0)
}

func (m *MockDocumentService) SetLabels(ctx context.Context, id string, labels []string) error {
	return m.Called(ctx, id, labels).Error(0)
}

func (m *MockDocumentService) Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error {
	return m.Called(ctx, id, opts).Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}
