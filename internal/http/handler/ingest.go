package handler

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"

	"docvault/internal/ingest"
	"docvault/internal/model"
	"docvault/internal/service"
)

type documentIDsRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

func (r documentIDsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DocumentIDs, validation.Required, validation.Each(is.UUID)),
	)
}

// ingestItem is the wire form of a reviewable item, carrying the placement override.
type ingestItem struct {
	model.BulkOperationItem
	Override *model.OverrideInput `json:"override,omitempty"`
}

func (it ingestItem) Validate() error {
	return validation.Errors{
		"document_id":    validation.Validate(it.File.DocumentID, validation.Required, is.UUID),
		"final_filename": validation.Validate(it.FinalFilename, validation.Required),
	}.Filter()
}

// item converts the wire form back, resolving the override variant.
func (it ingestItem) item() (model.BulkOperationItem, error) {
	out := it.BulkOperationItem
	out.Override = nil
	if it.Override != nil {
		o, err := it.Override.Override()
		if err != nil {
			return out, fmt.Errorf("item %s: %w", it.File.DocumentID, err)
		}
		out.Override = o
	}
	return out, nil
}

type commitRequest struct {
	Items []ingestItem `json:"items"`
}

func (r commitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required),
	)
}

type itemsResponse struct {
	Items []ingestItem `json:"items"`
}

type commitResponse struct {
	Reports []ingest.CommitReport `json:"reports"`
}

// AnalyzeUploads classifies the listed pending documents one at a time and returns
// reviewable items with the classifier's suggestions as defaults.
func AnalyzeUploads(docs service.DocumentService, pipeline *ingest.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		var req documentIDsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		ctx := c.UserContext()
		files := make([]model.UploadedFile, 0, len(req.DocumentIDs))
		for _, id := range req.DocumentIDs {
			doc, err := vaultDocument(ctx, docs, vaultID, id)
			if err != nil {
				return writeServiceError(c, err)
			}
			files = append(files, model.UploadedFile{
				DocumentID:  doc.ID,
				StorageKey:  doc.StoragePath,
				Filename:    doc.Name,
				ContentType: doc.ContentType,
				Size:        doc.Size,
			})
		}

		items := pipeline.AnalyzeBatch(ctx, files, nil)
		res := itemsResponse{Items: make([]ingestItem, len(items))}
		for i, it := range items {
			res.Items[i] = ingestItem{BulkOperationItem: it, Override: model.InputOf(it.Override)}
		}
		return c.JSON(res)
	}
}

// CommitUploads runs the commit pipeline for every reviewed item. Per-step failures are
// reported inside each item's report; the request itself still succeeds.
func CommitUploads(vaults service.VaultService, docs service.DocumentService, pipeline *ingest.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		var req commitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		items := make([]model.BulkOperationItem, 0, len(req.Items))
		for _, wire := range req.Items {
			it, err := wire.item()
			if err != nil {
				return writeServiceError(c, err)
			}
			items = append(items, it)
		}

		ctx := c.UserContext()
		vault, err := vaults.Get(ctx, vaultID)
		if err != nil {
			return writeServiceError(c, err)
		}
		for _, it := range items {
			if _, err := vaultDocument(ctx, docs, vaultID, it.File.DocumentID); err != nil {
				return writeServiceError(c, err)
			}
		}
		return c.JSON(commitResponse{Reports: pipeline.CommitBatch(ctx, *vault, items)})
	}
}

// CancelUploads deletes the pending documents of an abandoned batch. Documents of other
// vaults and documents already confirmed are reported as failures and kept.
func CancelUploads(pipeline *ingest.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		var req documentIDsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		items := make([]model.BulkOperationItem, len(req.DocumentIDs))
		for i, id := range req.DocumentIDs {
			items[i].File.DocumentID = id
		}
		return c.JSON(pipeline.CancelBatch(c.UserContext(), vaultID, items))
	}
}

// vaultDocument loads id and hides documents of other vaults behind ErrNotFound.
func vaultDocument(ctx context.Context, docs service.DocumentService, vaultID, id string) (*model.Document, error) {
	doc, err := docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.VaultID != vaultID {
		return nil, service.ErrNotFound
	}
	return doc, nil
}
