package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/cli/formatter"
	"github.com/alexanderramin/chewy/internal/poller"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(app *App) *cobra.Command {
	var board boardFlags
	var poll pollFlags
	var statusboard bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a board's progress on screen, refreshing as it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			boardID, err := resolveBoard(ctx, app, board.boardID)
			if errors.Is(err, chewyapp.ErrNoBoard) && app.interactive() {
				boardID, err = pickBoard(ctx, app)
			}
			if err != nil {
				return err
			}
			if err := app.Boards.RememberBoard(ctx, boardID); err != nil {
				app.logger().Warn("remembering board", zap.Error(err))
			}

			opts := watchOptions{
				interval:    poll.resolve(app),
				statusboard: statusboard,
				reloadDelay: app.Config.Poll.StatusboardReloadDelay,
			}

			if !app.interactive() {
				return runPlainWatch(ctx, app, boardID, opts, cmd.OutOrStdout())
			}

			p := tea.NewProgram(newWatchModel(ctx, app, boardID, opts),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(board.flagSet())
	cmd.Flags().AddFlagSet(poll.flagSet())
	cmd.Flags().BoolVar(&statusboard, "statusboard", false, "unattended display: no chrome, one hard reload after startup")

	return cmd
}

func pickBoard(ctx context.Context, app *App) (string, error) {
	list, err := app.Boards.ListBoards(ctx)
	if err != nil {
		return "", err
	}
	if len(list.Boards) == 0 {
		return "", chewyapp.ErrNoBoard
	}
	selected := list.Boards[0].ID
	if err := boardPickerForm(list.Boards, &selected).Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// runPlainWatch prints the dashboard after every cycle until ctx ends. In
// statusboard mode the cache is purged and the board refetched once, after
// reloadDelay.
func runPlainWatch(ctx context.Context, app *App, boardID string, opts watchOptions, out io.Writer) error {
	w := poller.NewWatcher(app.Dashboard, boardID, opts.interval,
		poller.WithLogger(app.logger()),
		poller.WithOnUpdate(func(s poller.Snapshot) {
			if s.Err != nil {
				fmt.Fprintln(out, formatter.FormatError(s.Err))
				return
			}
			fmt.Fprintln(out, formatter.FormatDashboard(s.Dashboard, formatter.DashboardOptions{Bare: opts.statusboard}))
		}),
	)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	var reload <-chan time.Time
	if opts.statusboard && opts.reloadDelay > 0 {
		timer := time.NewTimer(opts.reloadDelay)
		defer timer.Stop()
		reload = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			reload = nil
			if app.Cache != nil {
				if err := app.Cache.Purge(ctx); err != nil {
					app.logger().Warn("purging cache", zap.Error(err))
				}
			}
			w.Refresh()
		}
	}
}
