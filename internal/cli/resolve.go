package cli

import (
	"context"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
)

// resolveBoard picks the board a command works on: the flag, else the
// remembered board.
func resolveBoard(ctx context.Context, app *App, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	last, err := app.Boards.LastBoard(ctx)
	if err != nil {
		return "", err
	}
	if last == "" {
		return "", chewyapp.ErrNoBoard
	}
	return last, nil
}
