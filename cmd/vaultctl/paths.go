package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"docvault/internal/foldertree"
)

func newPathsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "paths <vault-id>",
		Short: "Print the full path of every folder in a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b *backend) error {
				folders, err := b.Folders.List(ctx, args[0], true)
				if err != nil {
					return fmt.Errorf("list folders: %w", err)
				}
				tree := foldertree.New(folders)

				type line struct{ path, id string }
				lines := make([]line, 0, len(folders))
				for _, f := range folders {
					lines = append(lines, line{path: tree.PathOf(f.ID), id: f.ID})
				}
				slices.SortFunc(lines, func(a, b line) int { return strings.Compare(a.path, b.path) })

				out := cmd.OutOrStdout()
				for _, l := range lines {
					fmt.Fprintf(out, "%s\t%s\n", l.path, l.id)
				}
				return nil
			})
		},
	}
}
