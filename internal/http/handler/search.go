package handler

import (
	"github.com/gofiber/fiber/v2"

	"docvault/internal/model"
	"docvault/internal/search"
	"docvault/internal/service"
)

// Default root group labels for search results.
const (
	DefaultPersonalVaultLabel     = "My Vault"
	DefaultOrganizationVaultLabel = "Business Vault"
)

// RootLabels name the group of root-level documents in search results, per vault kind.
type RootLabels struct {
	Personal     string
	Organization string
}

// For returns the label used for v, falling back to the defaults.
func (l RootLabels) For(v model.Vault) string {
	if v.IsPersonal() {
		if l.Personal != "" {
			return l.Personal
		}
		return DefaultPersonalVaultLabel
	}
	if l.Organization != "" {
		return l.Organization
	}
	return DefaultOrganizationVaultLabel
}

// SearchVault matches q against every document and folder of the vault.
func SearchVault(vaults service.VaultService, docs service.DocumentService, folders service.FolderService, labels RootLabels) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vaultID, ok := idParam(c, "vaultID")
		if !ok {
			return invalidVaultID(c)
		}
		ctx := c.UserContext()

		vault, err := vaults.Get(ctx, vaultID)
		if err != nil {
			return writeServiceError(c, err)
		}
		all, err := docs.List(ctx, vaultID, service.ListOptions{Recursive: true})
		if err != nil {
			return writeServiceError(c, err)
		}
		tree, err := folders.List(ctx, vaultID, true)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(search.Run(all, tree, c.Query("q"), labels.For(*vault)))
	}
}
