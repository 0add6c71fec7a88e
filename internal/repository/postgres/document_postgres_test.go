package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
	"docvault/internal/repository"
)

var documentRowColumns = []string{
	"id", "vault_id", "folder_id", "name", "storage_path", "size", "content_type", "doc_type", "labels",
	"expiration_date", "track_expiration", "due_date", "track_due_date", "is_favorite", "status",
	"was_analyzed", "page_count", "created_at",
}

func documentRow(rows *sqlmock.Rows, id string, folderID any, labels string) *sqlmock.Rows {
	return rows.AddRow(id, "vault-1", folderID, "file.pdf", "documents/"+id+".pdf", 100, "application/pdf", "pdf", labels,
		nil, false, nil, false, false, "pending", false, 0, time.Now())
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		VaultID:     "vault-1",
		Name:        "test.pdf",
		StoragePath: "documents/test.pdf",
		Size:        123,
		ContentType: "application/pdf",
		Type:        model.TypePDF,
		Labels:      []string{"tax"},
		Status:      model.StatusPending,
		CreatedAt:   now,
	}

	rows := documentRow(sqlmock.NewRows(documentRowColumns), doc.ID, nil, `["tax"]`)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.VaultID, nil, doc.Name, doc.StoragePath, doc.Size, doc.ContentType, doc.Type, `["tax"]`, "pending", doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, []string{"tax"}, result.Labels)
	assert.Nil(t, result.FolderID)
	assert.Equal(t, model.StatusPending, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := documentRow(sqlmock.NewRows(documentRowColumns), "test-id", "folder-1", `["a","b"]`)

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
		require.NotNil(t, doc.FolderID)
		assert.Equal(t, "folder-1", *doc.FolderID)
		assert.Equal(t, []string{"a", "b"}, doc.Labels)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListByVault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("recursive", func(t *testing.T) {
		rows := sqlmock.NewRows(documentRowColumns)
		documentRow(rows, "d1", nil, `[]`)
		documentRow(rows, "d2", "f1", `["x"]`)

		mock.ExpectQuery(`SELECT (.+) FROM documents WHERE vault_id = \$1 ORDER BY`).
			WithArgs("vault-1").
			WillReturnRows(rows)

		docs, err := repo.ListByVault(ctx, "vault-1", repository.DocumentFilter{Recursive: true})
		assert.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("root level", func(t *testing.T) {
		mock.ExpectQuery(`folder_id IS NULL`).
			WithArgs("vault-1").
			WillReturnRows(sqlmock.NewRows(documentRowColumns))

		docs, err := repo.ListByVault(ctx, "vault-1", repository.DocumentFilter{})
		assert.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("single folder", func(t *testing.T) {
		folder := "f1"
		mock.ExpectQuery(`folder_id = \$2`).
			WithArgs("vault-1", "f1").
			WillReturnRows(documentRow(sqlmock.NewRows(documentRowColumns), "d2", "f1", `[]`))

		docs, err := repo.ListByVault(ctx, "vault-1", repository.DocumentFilter{FolderID: &folder})
		assert.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Updates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	due := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	folder := "f1"

	mock.ExpectExec("UPDATE documents SET name").WithArgs("d1", "new.pdf").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET due_date").WithArgs("d1", due, true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET folder_id").WithArgs("d1", "f1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET labels").WithArgs("d1", `["a","b"]`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET status = 'confirmed'").WithArgs("d1", true, 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET expiration_date").WithArgs("missing", nil, false).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE documents SET name").WithArgs("d1", "x").WillReturnError(errors.New("db down"))

	assert.NoError(t, repo.UpdateName(ctx, "d1", "new.pdf"))
	assert.NoError(t, repo.UpdateDueDate(ctx, "d1", &due, true))
	assert.NoError(t, repo.UpdateFolder(ctx, "d1", &folder))
	assert.NoError(t, repo.UpdateLabels(ctx, "d1", []string{"a", "b"}))
	assert.NoError(t, repo.Confirm(ctx, "d1", model.ConfirmOptions{WasAnalyzed: true, PageCount: 3}))
	assert.ErrorIs(t, repo.UpdateExpiration(ctx, "missing", nil, false), sql.ErrNoRows)
	assert.EqualError(t, repo.UpdateName(ctx, "d1", "x"), "db down")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
