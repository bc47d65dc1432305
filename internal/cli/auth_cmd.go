package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/spf13/cobra"
)

var errMissingKey = errors.New("no Trello API key configured; set trello.key or CHEWY_TRELLO_KEY (see https://trello.com/app-key)")

func newAuthCmd(app *App) *cobra.Command {
	var token string
	var forget bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Connect chewy to your Trello account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if forget {
				if err := app.Auth.Forget(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, formatter.Dim("Stored token removed."))
				return nil
			}

			if app.Config.Trello.Key == "" {
				return errMissingKey
			}

			if token == "" {
				fmt.Fprintln(out, "Open this page, allow access and paste the token it shows:")
				fmt.Fprintf(out, "\n  %s\n\n", formatter.StyleBlue.Render(trello.AuthorizeURL(app.Config.TrelloClientConfig(""))))
				if !app.interactive() {
					return errors.New("not a terminal; pass the token with --token")
				}
				if err := tokenForm(&token).Run(); err != nil {
					return err
				}
			}

			me, err := app.Auth.Verify(ctx, token)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Authorized as %s (%s)\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(me.FullName),
				me.Username,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token to verify and store, skipping the prompt")
	cmd.Flags().BoolVar(&forget, "forget", false, "remove the stored token")

	return cmd
}
