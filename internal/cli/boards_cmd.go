package cli

import (
	"fmt"

	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBoardsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the boards you can see",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Boards.ListBoards(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoards(list))
			return nil
		},
	}
}
