package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/bulk"
	"docvault/internal/ingest"
	"docvault/internal/service"
)

// Deps are the collaborators the HTTP routes are built from.
type Deps struct {
	DB        *sql.DB
	Documents service.DocumentService
	Folders   service.FolderService
	Vaults    service.VaultService
	Ingest    *ingest.Pipeline
	Bulk      *bulk.Coordinator
	Labels    RootLabels
	// Location anchors date facets and relative date ranges. Defaults to UTC.
	Location *time.Location
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only translate between HTTP and the service layer.
func RegisterRoutes(app *fiber.App, d Deps) {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents/:id", GetDocument(d.Documents))
	app.Get("/documents/:id/download", DownloadDocument(d.Documents))
	app.Delete("/documents/:id", DeleteDocument(d.Documents))

	vaults := app.Group("/vaults/:vaultID")
	vaults.Post("/documents", UploadDocument(d.Documents))
	vaults.Get("/documents", ListDocuments(d.Documents, loc))
	vaults.Post("/documents/bulk", BulkApply(d.Bulk))
	vaults.Get("/search", SearchVault(d.Vaults, d.Documents, d.Folders, d.Labels))
	vaults.Post("/ingest/analyze", AnalyzeUploads(d.Documents, d.Ingest))
	vaults.Post("/ingest/commit", CommitUploads(d.Vaults, d.Documents, d.Ingest))
	vaults.Post("/ingest/cancel", CancelUploads(d.Ingest))
}

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || db.PingContext(ctx) != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// idParam returns the named path parameter when it is a valid UUID.
func idParam(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if !validUUID(id) {
		return "", false
	}
	return id, true
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func invalidVaultID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid vault id format")
}
