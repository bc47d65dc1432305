package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/chewy/internal/poller"
	"github.com/alexanderramin/chewy/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var board boardFlags
	var poll pollFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dashboards as JSON over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			deps := server.Deps{Boards: app.Boards, Dashboards: app.Dashboard}
			if board.boardID != "" {
				w := poller.NewWatcher(app.Dashboard, board.boardID, poll.resolve(app),
					poller.WithLogger(app.logger()))
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer w.Stop()
				deps.Watcher = w
			}

			srv := server.New(deps, app.logger())
			errc := make(chan error, 1)
			go func() { errc <- srv.Listen(addr) }()
			fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				app.logger().Info("shutting down", zap.String("addr", addr))
				if err := srv.Shutdown(); err != nil {
					return err
				}
				if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().AddFlagSet(board.flagSet())
	cmd.Flags().AddFlagSet(poll.flagSet())

	return cmd
}
