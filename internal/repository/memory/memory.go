// Package memory provides in-process repository implementations, safe for concurrent use.
// They back tests and local runs without a database.
package memory

import (
	"context"
	"database/sql"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentRepository stores documents in a map.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

// NewDocumentRepository returns an empty DocumentRepository.
func NewDocumentRepository(seed ...model.Document) *DocumentRepository {
	r := &DocumentRepository{docs: make(map[string]model.Document)}
	for _, d := range seed {
		r.docs[d.ID] = cloneDocument(d)
	}
	return r
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := cloneDocument(*doc)
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Status == "" {
		d.Status = model.StatusPending
	}
	r.docs[d.ID] = d
	out := cloneDocument(d)
	return &out, nil
}

func (r *DocumentRepository) FindByID(_ context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := cloneDocument(d)
	return &out, nil
}

func (r *DocumentRepository) ListByVault(_ context.Context, vaultID string, f repository.DocumentFilter) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Document, 0)
	for _, d := range r.docs {
		if d.VaultID != vaultID {
			continue
		}
		if !f.Recursive && !sameFolder(d.FolderID, f.FolderID) {
			continue
		}
		out = append(out, cloneDocument(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *DocumentRepository) UpdateName(_ context.Context, id, name string) error {
	return r.update(id, func(d *model.Document) { d.Name = name })
}

func (r *DocumentRepository) UpdateExpiration(_ context.Context, id string, date *time.Time, tracking bool) error {
	return r.update(id, func(d *model.Document) {
		d.ExpirationDate = cloneTime(date)
		d.TrackExpiration = tracking
	})
}

func (r *DocumentRepository) UpdateDueDate(_ context.Context, id string, date *time.Time, tracking bool) error {
	return r.update(id, func(d *model.Document) {
		d.DueDate = cloneTime(date)
		d.TrackDueDate = tracking
	})
}

func (r *DocumentRepository) UpdateFolder(_ context.Context, id string, folderID *string) error {
	return r.update(id, func(d *model.Document) { d.FolderID = cloneString(folderID) })
}

func (r *DocumentRepository) UpdateLabels(_ context.Context, id string, labels []string) error {
	return r.update(id, func(d *model.Document) { d.Labels = slices.Clone(labels) })
}

func (r *DocumentRepository) Confirm(_ context.Context, id string, opts model.ConfirmOptions) error {
	return r.update(id, func(d *model.Document) {
		d.Status = model.StatusConfirmed
		d.WasAnalyzed = opts.WasAnalyzed
		d.PageCount = opts.PageCount
	})
}

func (r *DocumentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *DocumentRepository) update(id string, fn func(*model.Document)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return sql.ErrNoRows
	}
	fn(&d)
	r.docs[id] = d
	return nil
}

// FolderRepository stores folders in a map and enforces unique names per parent.
type FolderRepository struct {
	mu      sync.Mutex
	folders map[string]model.Folder
	order   []string
}

// NewFolderRepository returns a FolderRepository holding the seed folders.
func NewFolderRepository(seed ...model.Folder) *FolderRepository {
	r := &FolderRepository{folders: make(map[string]model.Folder)}
	for _, f := range seed {
		r.folders[f.ID] = cloneFolder(f)
		r.order = append(r.order, f.ID)
	}
	return r
}

var _ repository.FolderRepository = (*FolderRepository)(nil)

func (r *FolderRepository) FindOrCreate(_ context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		f := r.folders[id]
		if f.VaultID == vaultID && f.Name == name && sameFolder(f.ParentID, parentID) {
			out := cloneFolder(f)
			return &out, nil
		}
	}
	f := model.Folder{
		ID:        uuid.NewString(),
		VaultID:   vaultID,
		Name:      name,
		ParentID:  cloneString(parentID),
		CreatedAt: time.Now().UTC(),
	}
	r.folders[f.ID] = f
	r.order = append(r.order, f.ID)
	out := cloneFolder(f)
	return &out, nil
}

func (r *FolderRepository) FindByID(_ context.Context, id string) (*model.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := cloneFolder(f)
	return &out, nil
}

func (r *FolderRepository) ListByVault(_ context.Context, vaultID string) ([]model.Folder, error) {
	return r.filter(func(f model.Folder) bool { return f.VaultID == vaultID }), nil
}

func (r *FolderRepository) ListChildren(_ context.Context, vaultID string, parentID *string) ([]model.Folder, error) {
	return r.filter(func(f model.Folder) bool {
		return f.VaultID == vaultID && sameFolder(f.ParentID, parentID)
	}), nil
}

func (r *FolderRepository) UpdateParent(_ context.Context, id string, parentID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return sql.ErrNoRows
	}
	f.ParentID = cloneString(parentID)
	r.folders[id] = f
	return nil
}

func (r *FolderRepository) filter(keep func(model.Folder) bool) []model.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Folder, 0)
	for _, id := range r.order {
		if f := r.folders[id]; keep(f) {
			out = append(out, cloneFolder(f))
		}
	}
	return out
}

// VaultRepository is a fixed set of vaults.
type VaultRepository struct {
	vaults map[string]model.Vault
}

// NewVaultRepository returns a VaultRepository over vaults.
func NewVaultRepository(vaults ...model.Vault) *VaultRepository {
	r := &VaultRepository{vaults: make(map[string]model.Vault, len(vaults))}
	for _, v := range vaults {
		r.vaults[v.ID] = v
	}
	return r
}

var _ repository.VaultRepository = (*VaultRepository)(nil)

func (r *VaultRepository) FindByID(_ context.Context, id string) (*model.Vault, error) {
	v, ok := r.vaults[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &v, nil
}

func sameFolder(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneDocument(d model.Document) model.Document {
	d.FolderID = cloneString(d.FolderID)
	d.Labels = slices.Clone(d.Labels)
	d.ExpirationDate = cloneTime(d.ExpirationDate)
	d.DueDate = cloneTime(d.DueDate)
	return d
}

func cloneFolder(f model.Folder) model.Folder {
	f.ParentID = cloneString(f.ParentID)
	return f
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
