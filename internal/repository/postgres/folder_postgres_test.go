package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var folderRowColumns = []string{"id", "vault_id", "parent_id", "name", "created_at"}

func TestFolderPostgres_FindOrCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()
	parent := "parent-1"

	t.Run("inserted or found in one statement", func(t *testing.T) {
		mock.ExpectQuery("WITH ins AS").
			WithArgs("vault-1", "parent-1", "Tax").
			WillReturnRows(sqlmock.NewRows(folderRowColumns).AddRow("f1", "vault-1", "parent-1", "Tax", time.Now()))

		f, err := repo.FindOrCreate(ctx, "vault-1", &parent, "Tax")
		require.NoError(t, err)
		assert.Equal(t, "f1", f.ID)
		require.NotNil(t, f.ParentID)
		assert.Equal(t, "parent-1", *f.ParentID)
	})

	t.Run("conflict committed after snapshot falls back to select", func(t *testing.T) {
		mock.ExpectQuery("WITH ins AS").
			WithArgs("vault-1", nil, "Tax").
			WillReturnRows(sqlmock.NewRows(folderRowColumns))
		mock.ExpectQuery("SELECT (.+) FROM folders").
			WithArgs("vault-1", nil, "Tax").
			WillReturnRows(sqlmock.NewRows(folderRowColumns).AddRow("f2", "vault-1", nil, "Tax", time.Now()))

		f, err := repo.FindOrCreate(ctx, "vault-1", nil, "Tax")
		require.NoError(t, err)
		assert.Equal(t, "f2", f.ID)
		assert.Nil(t, f.ParentID)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderPostgres_ListAndMove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewFolderPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders WHERE vault_id = ?").
		WithArgs("vault-1").
		WillReturnRows(sqlmock.NewRows(folderRowColumns).
			AddRow("f1", "vault-1", nil, "A", time.Now()).
			AddRow("f2", "vault-1", "f1", "B", time.Now()))
	mock.ExpectQuery("parent_id IS NOT DISTINCT FROM").
		WithArgs("vault-1", nil).
		WillReturnRows(sqlmock.NewRows(folderRowColumns).AddRow("f1", "vault-1", nil, "A", time.Now()))
	mock.ExpectExec("UPDATE folders SET parent_id").
		WithArgs("f2", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE folders SET parent_id").
		WithArgs("gone", nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	all, err := repo.ListByVault(ctx, "vault-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	roots, err := repo.ListChildren(ctx, "vault-1", nil)
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	assert.NoError(t, repo.UpdateParent(ctx, "f2", nil))
	assert.ErrorIs(t, repo.UpdateParent(ctx, "gone", nil), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVaultPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVaultPostgres(db)

	mock.ExpectQuery("SELECT id, kind, name FROM vaults").
		WithArgs("vault-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "name"}).AddRow("vault-1", "personal", "Mine"))

	v, err := repo.FindByID(context.Background(), "vault-1")
	require.NoError(t, err)
	assert.True(t, v.IsPersonal())
	assert.NoError(t, mock.ExpectationsWereMet())
}
