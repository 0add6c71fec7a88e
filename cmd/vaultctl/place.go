package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docvault/internal/foldertree"
	"docvault/internal/model"
	"docvault/internal/placement"
)

// newPlaceCmd previews the category fallback path without touching any vault.
func newPlaceCmd(c *cli) *cobra.Command {
	var (
		subtype  string
		personal bool
	)

	cmd := &cobra.Command{
		Use:   "place <category>",
		Short: "Show the folder path a classification falls back to",
		Example: `  vaultctl place tax_documents --subtype w2_form --personal
  vaultctl place "medical records"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.VaultOrganization
			if personal {
				kind = model.VaultPersonal
			}
			r := placement.NewResolver(nil, placement.WithPersonalRootLabel(c.cfg.Pipeline.PersonalRootLabel))
			segs := r.FallbackSegments(model.Vault{Kind: kind}, model.Classification{Category: args[0], Subtype: subtype})
			if len(segs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no fallback: category is empty or other)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(segs, foldertree.Separator))
			return nil
		},
	}
	cmd.Flags().StringVar(&subtype, "subtype", "", "Classification subtype")
	cmd.Flags().BoolVar(&personal, "personal", false, "Preview for a personal vault")
	return cmd
}
