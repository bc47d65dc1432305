package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/chewy/internal/cli"
	"github.com/alexanderramin/chewy/internal/config"
	"github.com/alexanderramin/chewy/internal/db"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/service"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{}
	defer func() {
		if app.Close != nil {
			_ = app.Close()
		}
	}()

	return cli.NewRootCmd(app, bootstrap).ExecuteContext(ctx)
}

// bootstrap wires configuration, storage and services into a cli.App.
func bootstrap(opts cli.Options) (*cli.App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	logFile := ""
	if opts.LogToFile {
		logFile = cfg.LogFile
	}
	logger, err := cli.NewLogger(opts.Verbose, logFile)
	if err != nil {
		return nil, err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Wire repositories
	settings := repository.NewSQLiteSettingsRepo(database)
	persisted := repository.NewSQLiteResponseCache(database)

	var cache trello.Cache = trello.NewMemoryCache()
	if cfg.Cache.Persist {
		cache = persisted
	}

	callObserver := trello.NewLogObserver(logger)
	newClient := func(token string) trello.Client {
		return trello.NewClient(cfg.TrelloClientConfig(token), cache, callObserver)
	}
	useCases := service.NewLogUseCaseObserver(logger)

	// Wire services
	auth := service.NewAuthService(settings, newClient, useCases)

	// A token from the config file or environment wins over the stored one.
	token := ""
	if cfg.Trello.Token == "" {
		token, err = auth.Token(context.Background())
		if err != nil {
			logger.Warn("loading stored token", zap.Error(err))
		}
	}
	client := newClient(token)

	matcher, err := cfg.StageMatcher()
	if err != nil {
		database.Close()
		return nil, err
	}
	boards := service.NewBoardService(client, settings, useCases)
	dashboard := service.NewDashboardService(client, boards, matcher, service.DashboardConfig{
		MinLists:     cfg.Board.MinLists,
		StrictStages: cfg.Board.StrictStages,
	}, useCases)

	logger.Debug("bootstrapped",
		zap.String("db", cfg.DBPath),
		zap.Bool("persist_cache", cfg.Cache.Persist),
		zap.Duration("poll_interval", cfg.Poll.Interval),
	)

	return &cli.App{
		Config:         cfg,
		Logger:         logger,
		Auth:           auth,
		Boards:         boards,
		Dashboard:      dashboard,
		Cache:          cache,
		PersistedCache: persisted,
		IsInteractive: func() bool {
			out, in := os.Stdout.Fd(), os.Stdin.Fd()
			return (isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out)) &&
				(isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in))
		},
		Close: database.Close,
	}, nil
}
