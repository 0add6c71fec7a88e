package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// VaultPostgres is a PostgreSQL implementation of repository.VaultRepository.
type VaultPostgres struct {
	db *sql.DB
}

// NewVaultPostgres creates a new VaultPostgres repository.
func NewVaultPostgres(db *sql.DB) *VaultPostgres {
	return &VaultPostgres{db: db}
}

var _ repository.VaultRepository = (*VaultPostgres)(nil)

// FindByID fetches a vault by ID.
func (r *VaultPostgres) FindByID(ctx context.Context, id string) (*model.Vault, error) {
	const q = `SELECT id, kind, name FROM vaults WHERE id = $1`
	var (
		v    model.Vault
		kind string
	)
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &kind, &v.Name); err != nil {
		return nil, err
	}
	v.Kind = model.VaultKind(kind)
	return &v, nil
}
