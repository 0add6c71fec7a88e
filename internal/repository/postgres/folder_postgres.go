package postgres

import (
	"context"
	"database/sql"
	"errors"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

const folderColumns = `id, vault_id, parent_id, name, created_at`

func scanFolder(s rowScanner) (*model.Folder, error) {
	var (
		f        model.Folder
		parentID sql.NullString
	)
	if err := s.Scan(&f.ID, &f.VaultID, &parentID, &f.Name, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.ParentID = nullStringPtr(parentID)
	return &f, nil
}

// FindOrCreate inserts the folder unless a sibling with the same name exists, relying on
// uq_folders_vault_parent_name to settle concurrent inserts.
func (r *FolderPostgres) FindOrCreate(ctx context.Context, vaultID string, parentID *string, name string) (*model.Folder, error) {
	q := `
		WITH ins AS (
			INSERT INTO folders (vault_id, parent_id, name)
			VALUES ($1, $2::uuid, $3)
			ON CONFLICT (vault_id, COALESCE(parent_id, '00000000-0000-0000-0000-000000000000'::uuid), name) DO NOTHING
			RETURNING ` + folderColumns + `
		)
		SELECT ` + folderColumns + ` FROM ins
		UNION ALL
		SELECT ` + folderColumns + ` FROM folders
		WHERE vault_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid AND name = $3
		LIMIT 1
	`
	f, err := scanFolder(r.db.QueryRowContext(ctx, q, vaultID, parentID, name))
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// The conflicting row was committed after this statement's snapshot was taken.
	retry := `SELECT ` + folderColumns + ` FROM folders
		WHERE vault_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid AND name = $3`
	return scanFolder(r.db.QueryRowContext(ctx, retry, vaultID, parentID, name))
}

// FindByID fetches a folder by ID.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	q := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// ListByVault returns every folder of the vault.
func (r *FolderPostgres) ListByVault(ctx context.Context, vaultID string) ([]model.Folder, error) {
	q := `SELECT ` + folderColumns + ` FROM folders WHERE vault_id = $1 ORDER BY name ASC, id ASC`
	return r.list(ctx, q, vaultID)
}

// ListChildren returns the immediate children of parentID.
func (r *FolderPostgres) ListChildren(ctx context.Context, vaultID string, parentID *string) ([]model.Folder, error) {
	q := `SELECT ` + folderColumns + ` FROM folders
		WHERE vault_id = $1 AND parent_id IS NOT DISTINCT FROM $2::uuid
		ORDER BY name ASC, id ASC`
	return r.list(ctx, q, vaultID, parentID)
}

// UpdateParent re-parents a folder. Cycle checks belong to the caller.
func (r *FolderPostgres) UpdateParent(ctx context.Context, id string, parentID *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE folders SET parent_id = $2 WHERE id = $1`, id, parentID)
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

func (r *FolderPostgres) list(ctx context.Context, q string, args ...any) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
