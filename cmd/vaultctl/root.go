package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"docvault/internal/config"
	"docvault/internal/database"
	"docvault/internal/logging"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
)

var errNoDatabase = errors.New("this command needs a database connection")

// backend is what the data commands operate on. DB is nil for non-SQL backends.
type backend struct {
	DB      *sql.DB
	Docs    service.DocumentService
	Folders service.FolderService
	Vaults  service.VaultService
}

func (b *backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// opener connects the commands to their backend.
type opener func(ctx context.Context, cfg *config.AppConfig) (*backend, error)

func openPostgres(ctx context.Context, cfg *config.AppConfig) (*backend, error) {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	folders := postgres.NewFolderPostgres(db)
	return &backend{
		DB:      db,
		Docs:    service.NewDocumentService(nil, postgres.NewDocumentPostgres(db), folders),
		Folders: service.NewFolderService(folders),
		Vaults:  service.NewVaultService(postgres.NewVaultPostgres(db)),
	}, nil
}

// cli is the state shared by every subcommand.
type cli struct {
	cfg     *config.AppConfig
	log     *slog.Logger
	open    opener
	verbose bool
}

// withBackend opens the backend for the duration of fn.
func (c *cli) withBackend(ctx context.Context, fn func(*backend) error) error {
	b, err := c.open(ctx, c.cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "vaultctl",
		Short:         "Inspect and maintain document vaults",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.cfg = config.Load()
			level := c.cfg.LogLevel
			if c.verbose {
				level = "debug"
			}
			c.log = logging.New(os.Stderr, c.cfg.Location, level)
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newMigrateCmd(c),
		newSearchCmd(c),
		newPathsCmd(c),
		newPlaceCmd(c),
	)
	return root
}
