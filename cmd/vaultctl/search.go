package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"docvault/internal/foldertree"
	"docvault/internal/search"
	"docvault/internal/service"
)

func newSearchCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <vault-id> <query>",
		Short: "Search a vault's documents and folders",
		Long: `Search matches every document and folder name of a vault, plus document labels.

Terms prefixed with + are required, terms prefixed with - exclude a match.

Examples:
  vaultctl search $VAULT "tax 2024"
  vaultctl search $VAULT "+invoice -draft" --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vaultID, query := args[0], strings.Join(args[1:], " ")
			ctx := cmd.Context()

			return c.withBackend(ctx, func(b *backend) error {
				vault, err := b.Vaults.Get(ctx, vaultID)
				if err != nil {
					return fmt.Errorf("get vault: %w", err)
				}
				docs, err := b.Docs.List(ctx, vaultID, service.ListOptions{Recursive: true})
				if err != nil {
					return fmt.Errorf("list documents: %w", err)
				}
				folders, err := b.Folders.List(ctx, vaultID, true)
				if err != nil {
					return fmt.Errorf("list folders: %w", err)
				}

				res := search.Run(docs, folders, query, rootLabel(c, vault.IsPersonal()))
				c.log.Debug("search finished", "vault_id", vaultID, "query", query,
					"documents", len(res.Documents), "folders", len(res.Folders))

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}
				printResult(cmd, res)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func rootLabel(c *cli, personal bool) string {
	if personal {
		return c.cfg.Pipeline.PersonalVaultLabel
	}
	return c.cfg.Pipeline.OrganizationVaultLabel
}

// printResult writes one block per folder group, ordered by path, then the matched folders.
func printResult(cmd *cobra.Command, res search.Result) {
	out := cmd.OutOrStdout()
	if len(res.Documents) == 0 && len(res.Folders) == 0 {
		fmt.Fprintln(out, "No results found")
		return
	}

	groups := make([]foldertree.Group, 0, len(res.GroupedByFolder))
	for _, g := range res.GroupedByFolder {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b foldertree.Group) int { return strings.Compare(a.Path, b.Path) })

	for _, g := range groups {
		fmt.Fprintf(out, "%s\n", g.Path)
		for _, d := range g.Documents {
			fmt.Fprintf(out, "  %s  %s\n", d.ID, d.Name)
		}
	}
	if len(res.Folders) > 0 {
		fmt.Fprintln(out, "Folders:")
		for _, f := range res.Folders {
			fmt.Fprintf(out, "  %s  %s\n", f.ID, f.Name)
		}
	}
}
