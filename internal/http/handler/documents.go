package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"docvault/internal/search"
	"docvault/internal/service"
)

const dateLayout = "2006-01-02"

// UploadDocument stores a multipart upload (field name: file) as a pending document.
func UploadDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docs.Upload(c.UserContext(), vaultID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments lists one folder (or the whole vault with recursive=true) and applies
// the facet query parameters.
func ListDocuments(docs service.DocumentService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		cfg, err := filterFromQuery(c, loc)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}
		if err := cfg.Validate(); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		}

		opts := service.ListOptions{Recursive: c.QueryBool("recursive", false)}
		if fid := c.Query("folder_id"); fid != "" && !opts.Recursive {
			if !validUUID(fid) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid folder id format")
			}
			opts.FolderID = &fid
		}

		res, err := docs.List(c.UserContext(), vaultID, opts)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(search.Apply(res, cfg, time.Now().In(loc)))
	}
}

// GetDocument returns one document by id.
func GetDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docs.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes the stored object and the document record.
func DeleteDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docs.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

const downloadURLExpiry = 15 * time.Minute

// DownloadDocument returns a presigned object storage URL for the document content.
func DownloadDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := docs.DownloadURL(c.UserContext(), id, downloadURLExpiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"url":        u,
			"expires_in": int(downloadURLExpiry.Seconds()),
		})
	}
}

// filterFromQuery reads the facet selections. Dates are calendar days in loc.
func filterFromQuery(c *fiber.Ctx, loc *time.Location) (search.SearchFilterConfig, error) {
	cfg := search.SearchFilterConfig{
		Query:     c.Query("q"),
		Type:      c.Query("type", search.All),
		Tag:       c.Query("tag", search.All),
		DateRange: search.DateRange(c.Query("date", string(search.DateAll))),
		Size:      search.SizeBucket(c.Query("size", string(search.SizeAll))),
		SortBy:    search.SortKey(c.Query("sort")),
		Order:     search.SortOrder(c.Query("order")),
		Language:  acceptedLanguage(c.Get(fiber.HeaderAcceptLanguage)),
	}
	if v := c.Query("favorites"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("favorites: %q is not a boolean", v)
		}
		cfg.FavoritesOnly = b
	}
	var err error
	if cfg.From, err = queryDate(c, "from", loc); err != nil {
		return cfg, err
	}
	if cfg.To, err = queryDate(c, "to", loc); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func queryDate(c *fiber.Ctx, key string, loc *time.Location) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: expected YYYY-MM-DD", key)
	}
	return &t, nil
}

// acceptedLanguage picks the caller's preferred language for name collation.
// The zero tag falls back to the search package default.
func acceptedLanguage(header string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return language.Und
	}
	return tags[0]
}
