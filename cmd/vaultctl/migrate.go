package main

import (
	"github.com/spf13/cobra"

	"docvault/internal/database/migration"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the vault schema if it does not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withBackend(cmd.Context(), func(b *backend) error {
				if b.DB == nil {
					return errNoDatabase
				}
				return migration.EnsureMigrated(cmd.Context(), b.DB, c.log, c.cfg.Database.Host)
			})
		},
	}
}
