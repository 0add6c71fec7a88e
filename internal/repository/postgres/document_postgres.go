package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, vault_id, folder_id, name, storage_path, size, content_type, doc_type, labels,
		expiration_date, track_expiration, due_date, track_due_date, is_favorite, status,
		was_analyzed, page_count, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var (
		d          model.Document
		folderID   sql.NullString
		labels     []byte
		expiration sql.NullTime
		due        sql.NullTime
		status     string
	)
	if err := s.Scan(
		&d.ID,
		&d.VaultID,
		&folderID,
		&d.Name,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.Type,
		&labels,
		&expiration,
		&d.TrackExpiration,
		&due,
		&d.TrackDueDate,
		&d.IsFavorite,
		&status,
		&d.WasAnalyzed,
		&d.PageCount,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	d.FolderID = nullStringPtr(folderID)
	d.ExpirationDate = nullTimePtr(expiration)
	d.DueDate = nullTimePtr(due)
	d.Status = model.DocumentStatus(status)
	d.Labels = []string{}
	if len(labels) > 0 {
		if err := json.Unmarshal(labels, &d.Labels); err != nil {
			return nil, fmt.Errorf("decode labels: %w", err)
		}
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	labels, err := encodeLabels(doc.Labels)
	if err != nil {
		return nil, err
	}
	q := `
		INSERT INTO documents (id, vault_id, folder_id, name, storage_path, size, content_type, doc_type, labels, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.VaultID,
		doc.FolderID,
		doc.Name,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.Type,
		labels,
		string(doc.Status),
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByVault returns the vault's documents, newest first.
func (r *DocumentPostgres) ListByVault(ctx context.Context, vaultID string, f repository.DocumentFilter) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE vault_id = $1`
	args := []any{vaultID}
	if !f.Recursive {
		if f.FolderID == nil {
			q += ` AND folder_id IS NULL`
		} else {
			q += ` AND folder_id = $2`
			args = append(args, *f.FolderID)
		}
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateName renames a document.
func (r *DocumentPostgres) UpdateName(ctx context.Context, id, name string) error {
	return r.exec(ctx, `UPDATE documents SET name = $2 WHERE id = $1`, id, name)
}

// UpdateExpiration sets or clears the expiration date and its tracking flag.
func (r *DocumentPostgres) UpdateExpiration(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return r.exec(ctx, `UPDATE documents SET expiration_date = $2, track_expiration = $3 WHERE id = $1`, id, date, tracking)
}

// UpdateDueDate sets or clears the due date and its tracking flag.
func (r *DocumentPostgres) UpdateDueDate(ctx context.Context, id string, date *time.Time, tracking bool) error {
	return r.exec(ctx, `UPDATE documents SET due_date = $2, track_due_date = $3 WHERE id = $1`, id, date, tracking)
}

// UpdateFolder moves a document; nil places it at the vault root.
func (r *DocumentPostgres) UpdateFolder(ctx context.Context, id string, folderID *string) error {
	return r.exec(ctx, `UPDATE documents SET folder_id = $2 WHERE id = $1`, id, folderID)
}

// UpdateLabels replaces the label set.
func (r *DocumentPostgres) UpdateLabels(ctx context.Context, id string, labels []string) error {
	enc, err := encodeLabels(labels)
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE documents SET labels = $2::jsonb WHERE id = $1`, id, enc)
}

// Confirm transitions the document to confirmed.
func (r *DocumentPostgres) Confirm(ctx context.Context, id string, opts model.ConfirmOptions) error {
	return r.exec(ctx,
		`UPDATE documents SET status = 'confirmed', was_analyzed = $2, page_count = $3 WHERE id = $1`,
		id, opts.WasAnalyzed, opts.PageCount,
	)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func (r *DocumentPostgres) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func encodeLabels(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("encode labels: %w", err)
	}
	return string(b), nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
