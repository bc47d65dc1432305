package cli

import (
	"time"

	"github.com/spf13/pflag"
)

// boardFlags is shared by every command that works on a single board.
type boardFlags struct {
	boardID string
}

func (f *boardFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("board", pflag.ContinueOnError)
	fs.StringVarP(&f.boardID, "board", "b", "", "board ID (default: the last board used)")
	return fs
}

// pollFlags configures commands that keep a dashboard refreshed.
type pollFlags struct {
	interval time.Duration
}

func (f *pollFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("poll", pflag.ContinueOnError)
	fs.DurationVar(&f.interval, "interval", 0, "refresh interval (default from config, 5s)")
	return fs
}

// resolve returns the flag value, or the configured interval when unset.
func (f *pollFlags) resolve(app *App) time.Duration {
	if f.interval > 0 {
		return f.interval
	}
	return app.Config.Poll.Interval
}
