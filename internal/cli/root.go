package cli

import (
	"github.com/alexanderramin/chewy/internal/config"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/service"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the configuration and services CLI commands use.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Auth      service.AuthService
	Boards    service.BoardService
	Dashboard service.DashboardService

	// Cache is the Trello response cache the client reads through. The
	// statusboard purges it for its hard reload.
	Cache trello.Cache
	// PersistedCache is the SQLite response cache cleared by "cache clear".
	PersistedCache repository.ResponseCacheRepo

	IsInteractive func() bool
	Close         func() error
}

// Options are the global flags handed to a Bootstrapper.
type Options struct {
	ConfigPath string
	Verbose    bool
	// LogToFile sends logs to the configured log file so they stay out of
	// a full-screen UI.
	LogToFile bool
}

// Bootstrapper builds the App once flags are parsed.
type Bootstrapper func(opts Options) (*App, error)

// NewRootCmd creates the top-level "chewy" command. boot fills app before any
// subcommand runs; with a nil boot, app is used as given.
func NewRootCmd(app *App, boot Bootstrapper) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:   "chewy",
		Short: "Sprint progress from a Trello board",
		Long: `chewy reads a Trello board and shows how far each member got this sprint.

Points come from annotations in card, checklist and item names:
  [3]       3 planned points
  [2->5]    estimated 2, grew to 5 (3 unplanned)
  * [1]     1 unplanned point`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if boot == nil {
				return nil
			}
			opts.LogToFile = cmd.Name() == "watch"
			built, err := boot(opts)
			if err != nil {
				return err
			}
			*app = *built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.chewy/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newAuthCmd(app),
		newBoardsCmd(app),
		newShowCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
		newCacheCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
