package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"docvault/internal/bulk"
	"docvault/internal/model"
	"docvault/internal/service"
	serviceMocks "docvault/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkApply(t *testing.T) {
	docs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/vaults/:vaultID/documents/bulk", BulkApply(bulk.NewCoordinator(docs, nil, nil)))

	vaultID := uuid.New().String()
	path := "/vaults/" + vaultID + "/documents/bulk"

	t.Run("move counts malformed ids as failures", func(t *testing.T) {
		id := uuid.New().String()
		docs.On("List", mock.Anything, vaultID, service.ListOptions{Recursive: true}).
			Return([]model.Document{{ID: id}}, nil).Once()
		docs.On("SetFolder", mock.Anything, id, (*string)(nil)).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, path, bulkRequest{
			Kind: bulk.KindMove,
			IDs:  []string{id, "not-a-uuid"},
		}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res model.BulkBatchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.Succeeded)
		assert.Equal(t, 1, res.Failed)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, "not-a-uuid", res.Failures[0].ID)
		docs.AssertExpectations(t)
	})

	t.Run("tag reads labels from the vault", func(t *testing.T) {
		id := uuid.New().String()
		docs.On("List", mock.Anything, vaultID, service.ListOptions{Recursive: true}).
			Return([]model.Document{{ID: id, Labels: []string{"tax"}}}, nil).Once()
		docs.On("SetLabels", mock.Anything, id, []string{"tax", "2025"}).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, path, bulkRequest{
			Kind:    bulk.KindTag,
			IDs:     []string{id},
			AddTags: []string{"2025"},
		}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res model.BulkBatchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, 1, res.Succeeded)
		docs.AssertExpectations(t)
	})

	t.Run("delete skips documents of other vaults", func(t *testing.T) {
		foreign := uuid.New().String()
		docs.On("List", mock.Anything, vaultID, service.ListOptions{Recursive: true}).
			Return([]model.Document{}, nil).Once()

		resp, _ := app.Test(jsonRequest(t, http.MethodPost, path, bulkRequest{
			Kind: bulk.KindDelete,
			IDs:  []string{foreign},
		}))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res model.BulkBatchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, 1, res.Failed)
		docs.AssertNotCalled(t, "Delete", mock.Anything, foreign)
		docs.AssertExpectations(t)
	})

	t.Run("unknown kind", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(t, http.MethodPost, path, bulkRequest{Kind: "archive"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed destination", func(t *testing.T) {
		bad := "elsewhere"
		resp, _ := app.Test(jsonRequest(t, http.MethodPost, path, bulkRequest{
			Kind:     bulk.KindMove,
			IDs:      []string{uuid.New().String()},
			FolderID: &bad,
		}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_FAILED", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid vault id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(t, http.MethodPost, "/vaults/x/documents/bulk", bulkRequest{Kind: bulk.KindDelete}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})
}
