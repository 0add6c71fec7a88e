package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

const maxNameLength = 255

var (
	ErrIDRequired  = errors.New("id is required")
	ErrNotFound    = errors.New("document not found")
	ErrReaderNil   = errors.New("reader is nil")
	ErrValidation  = errors.New("validation failed")
	noSlashes      = regexp.MustCompile(`^[^/\\]+$`)
	nameFieldRules = []validation.Rule{
		validation.Required,
		validation.Length(1, maxNameLength),
		validation.Match(noSlashes).Error("name cannot contain slashes"),
	}
)

// ListOptions scopes DocumentService.List.
// Recursive returns the whole vault; otherwise FolderID selects one folder (nil = root).
type ListOptions struct {
	FolderID  *string
	Recursive bool
}

// DocumentService is the Document Service collaborator of the ingestion and bulk pipelines.
// Every mutation returns ErrNotFound when the id does not exist.
type DocumentService interface {
	// Upload streams the content to object storage and records a pending document.
	// The object is removed again if the row cannot be saved.
	Upload(ctx context.Context, vaultID string, r io.Reader, filename, contentType string, size int64) (*model.Document, error)

	// Create records doc as pending and returns its id.
	Create(ctx context.Context, doc *model.Document) (string, error)

	Get(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, vaultID string, opts ListOptions) ([]model.Document, error)

	Rename(ctx context.Context, id, name string) error
	SetExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error
	SetDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error
	SetFolder(ctx context.Context, id string, folderID *string) error
	SetLabels(ctx context.Context, id string, labels []string) error

	// Confirm transitions a pending document to confirmed.
	Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error

	// Delete removes the stored object, then the record.
	Delete(ctx context.Context, id string) error

	// DownloadURL presigns a time-limited GET for the stored object.
	DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error)
}

type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	folders repository.FolderRepository
	now     func() time.Time
}

// NewDocumentService constructs a DocumentService.
// folders may be nil, in which case SetFolder does not check the target folder exists.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, folders repository.FolderRepository) DocumentService {
	return &documentService{store: store, repo: repo, folders: folders, now: time.Now}
}

func (s *documentService) Upload(ctx context.Context, vaultID string, r io.Reader, filename, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if vaultID == "" {
		return nil, ErrIDRequired
	}
	if err := validation.Validate(filename, nameFieldRules...); err != nil {
		return nil, fmt.Errorf("%w: filename: %v", ErrValidation, err)
	}

	id := uuid.New().String()
	key := storage.DocumentKey(vaultID, id, filename)
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          id,
		VaultID:     vaultID,
		Name:        filename,
		StoragePath: objInfo.Key,
		ContentType: contentType,
		Type:        model.TypeFromContentType(contentType),
		Size:        objInfo.Size,
		Labels:      []string{},
		CreatedAt:   s.now().UTC(),
		Status:      model.StatusPending,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) Create(ctx context.Context, doc *model.Document) (string, error) {
	if doc == nil || doc.VaultID == "" {
		return "", ErrIDRequired
	}
	if err := validation.Validate(doc.Name, nameFieldRules...); err != nil {
		return "", fmt.Errorf("%w: name: %v", ErrValidation, err)
	}
	d := *doc
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now().UTC()
	}
	if d.Type == "" {
		d.Type = model.TypeFromContentType(d.ContentType)
	}
	d.Labels = model.NormalizeLabels(d.Labels)
	d.Status = model.StatusPending
	stored, err := s.repo.Create(ctx, &d)
	if err != nil {
		return "", err
	}
	return stored.ID, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context, vaultID string, opts ListOptions) ([]model.Document, error) {
	if vaultID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListByVault(ctx, vaultID, repository.DocumentFilter{
		FolderID:  opts.FolderID,
		Recursive: opts.Recursive,
	})
}

func (s *documentService) Rename(ctx context.Context, id, name string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := validation.Validate(name, nameFieldRules...); err != nil {
		return fmt.Errorf("%w: name: %v", ErrValidation, err)
	}
	return notFound(s.repo.UpdateName(ctx, id, name))
}

func (s *documentService) SetExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.UpdateExpiration(ctx, id, date, tracking))
}

func (s *documentService) SetDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.UpdateDueDate(ctx, id, date, tracking))
}

func (s *documentService) SetFolder(ctx context.Context, id string, folderID *string) error {
	if id == "" {
		return ErrIDRequired
	}
	if folderID != nil && s.folders != nil {
		doc, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return notFound(err)
		}
		folder, err := s.folders.FindByID(ctx, *folderID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFolderNotFound
			}
			return err
		}
		if folder.VaultID != doc.VaultID {
			return ErrFolderOtherVault
		}
	}
	return notFound(s.repo.UpdateFolder(ctx, id, folderID))
}

func (s *documentService) SetLabels(ctx context.Context, id string, labels []string) error {
	if id == "" {
		return ErrIDRequired
	}
	return notFound(s.repo.UpdateLabels(ctx, id, model.NormalizeLabels(labels)))
}

func (s *documentService) Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error {
	if id == "" {
		return ErrIDRequired
	}
	if opts.PageCount <= 0 {
		opts.PageCount = 1
	}
	return notFound(s.repo.Confirm(ctx, id, opts))
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	// Keep the row when the object cannot be removed so the blob is not orphaned.
	if doc.StoragePath != "" {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) DownloadURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.StoragePath == "" {
		return "", fmt.Errorf("%w: document has no stored content", ErrValidation)
	}
	return s.store.PresignGet(ctx, doc.StoragePath, expiry)
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
