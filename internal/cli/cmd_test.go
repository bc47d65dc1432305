package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/testutil"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), app, args...)
}

func executeContext(t *testing.T, ctx context.Context, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app, nil)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestShowCmd_PrintsDashboard(t *testing.T) {
	app, dash, boards := newTestApp()

	out, err := execute(t, app, "show", "--board", "b2")
	require.NoError(t, err)

	plain := stripANSI(out)
	assert.Contains(t, plain, "BOARD B2 · SPRINT 7")
	assert.Contains(t, plain, "Mona Lisa")
	assert.Equal(t, []string{"b2"}, dash.Calls())
	assert.Equal(t, "b2", boards.Last(), "show remembers the board")
}

func TestShowCmd_JSON(t *testing.T) {
	app, _, _ := newTestApp()

	out, err := execute(t, app, "show", "-b", "b1", "--json")
	require.NoError(t, err)

	var resp chewyapp.DashboardResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "b1", resp.Board.ID)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "Mona Lisa", resp.Members[0].Member.FullName)
}

func TestShowCmd_FallsBackToLastBoard(t *testing.T) {
	app, dash, boards := newTestApp()
	boards.last = "b2"

	_, err := execute(t, app, "show")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, dash.Calls())
}

func TestShowCmd_NoBoard(t *testing.T) {
	app, dash, _ := newTestApp()

	_, err := execute(t, app, "show")
	assert.ErrorIs(t, err, chewyapp.ErrNoBoard)
	assert.Empty(t, dash.Calls())
}

func TestBoardsCmd(t *testing.T) {
	app, _, boards := newTestApp()
	boards.last = "b2"

	out, err := execute(t, app, "boards")
	require.NoError(t, err)

	plain := stripANSI(out)
	assert.Contains(t, plain, "Alpha")
	assert.Contains(t, plain, "Beta")
	assert.Contains(t, plain, "●")
}

func TestCacheClearCmd(t *testing.T) {
	app, _, _ := newTestApp()
	cache := repository.NewSQLiteResponseCache(testutil.NewTestDB(t))
	app.PersistedCache = cache

	ctx := context.Background()
	require.NoError(t, cache.Store(ctx, "GET_/boards/b1", []byte(`{}`)))
	require.NoError(t, cache.Store(ctx, "GET_/members/me", []byte(`{}`)))

	out, err := execute(t, app, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, stripANSI(out), "Removed 2 cached responses.")

	n, err := cache.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthCmd(t *testing.T) {
	t.Run("verifies and stores the token", func(t *testing.T) {
		app, _, _ := newTestApp()
		auth := &stubAuth{}
		app.Auth = auth

		out, err := execute(t, app, "auth", "--token", "good-token")
		require.NoError(t, err)
		assert.Contains(t, stripANSI(out), "Authorized as Mona Lisa (mona)")
		stored, _ := auth.Token(context.Background())
		assert.Equal(t, "good-token", stored)
	})

	t.Run("rejected token", func(t *testing.T) {
		app, _, _ := newTestApp()
		app.Auth = &stubAuth{}

		_, err := execute(t, app, "auth", "--token", "nope")
		assert.Equal(t, chewyapp.DashboardErrUnauthorized, chewyapp.ClassifyError(err))
	})

	t.Run("prints the authorize url without a terminal", func(t *testing.T) {
		app, _, _ := newTestApp()
		app.Auth = &stubAuth{}

		out, err := execute(t, app, "auth")
		require.Error(t, err)
		assert.Contains(t, stripANSI(out), "key=test-key")
		assert.Contains(t, err.Error(), "--token")
	})

	t.Run("missing key", func(t *testing.T) {
		app, _, _ := newTestApp()
		app.Auth = &stubAuth{}
		app.Config.Trello.Key = ""

		_, err := execute(t, app, "auth", "--token", "good-token")
		assert.ErrorIs(t, err, errMissingKey)
	})

	t.Run("forget", func(t *testing.T) {
		app, _, _ := newTestApp()
		auth := &stubAuth{stored: "good-token"}
		app.Auth = auth

		_, err := execute(t, app, "auth", "--forget")
		require.NoError(t, err)
		stored, _ := auth.Token(context.Background())
		assert.Empty(t, stored)
	})
}

func TestWatchCmd_PlainOutputWithoutTerminal(t *testing.T) {
	app, dash, boards := newTestApp()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, err := executeContext(t, ctx, app, "watch", "-b", "b1", "--interval", "1h")
	require.NoError(t, err)

	assert.Contains(t, stripANSI(out), "Mona Lisa")
	assert.Equal(t, []string{"b1"}, dash.Calls())
	assert.Equal(t, "b1", boards.Last())
}

func TestWatchCmd_PlainStatusboardHardReloadsOnce(t *testing.T) {
	app, dash, _ := newTestApp()
	app.Config.Poll.StatusboardReloadDelay = 30 * time.Millisecond
	cache := app.Cache.(*trello.MemoryCache)
	require.NoError(t, cache.Store(context.Background(), "GET_/boards/b1", []byte(`{"id":"b1"}`)))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := executeContext(t, ctx, app, "watch", "-b", "b1", "--interval", "1h", "--statusboard")
	require.NoError(t, err)

	assert.Zero(t, cache.Len())
	assert.Equal(t, []string{"b1", "b1"}, dash.Calls())
}
