package cli

import (
	"fmt"

	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Trello response cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached Trello response",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			n, err := app.PersistedCache.Count(ctx)
			if err != nil {
				return err
			}
			if err := app.PersistedCache.Purge(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Removed %d cached responses.", n)))
			return nil
		},
	})

	return cmd
}
