package cli

import (
	"encoding/json"
	"fmt"
	"time"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newShowCmd(app *App) *cobra.Command {
	var board boardFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a board's progress once",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			boardID, err := resolveBoard(ctx, app, board.boardID)
			if err != nil {
				return err
			}

			stop := func() {}
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading board…")
			}
			resp, err := app.Dashboard.Calc(ctx, chewyapp.NewDashboardRequest(boardID))
			stop()
			if err != nil {
				return err
			}

			if err := app.Boards.RememberBoard(ctx, boardID); err != nil {
				app.logger().Warn("remembering board", zap.Error(err))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(out, formatter.FormatDashboard(resp, formatter.DashboardOptions{Now: time.Now()}))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(board.flagSet())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")

	return cmd
}
