package handler

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"docvault/internal/bulk"
)

type bulkRequest struct {
	Kind       bulk.Kind `json:"kind"`
	IDs        []string  `json:"ids"`
	FolderID   *string   `json:"folder_id"`
	AddTags    []string  `json:"add_tags"`
	RemoveTags []string  `json:"remove_tags"`
}

// Validate checks the batch shape only. Malformed ids are reported per target, not rejected.
func (r bulkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required, validation.In(bulk.KindMove, bulk.KindTag, bulk.KindDelete)),
	)
}

// BulkApply runs one mutation against many documents and returns the aggregate result.
func BulkApply(coord *bulk.Coordinator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		var req bulkRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		res, err := coord.Apply(c.UserContext(), req.Kind, req.IDs, bulk.Params{
			VaultID:    vaultID,
			FolderID:   req.FolderID,
			AddTags:    req.AddTags,
			RemoveTags: req.RemoveTags,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
