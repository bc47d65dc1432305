package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/testutil"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_SingleDoneCard(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	m := testutil.NewTestMember("Mona")
	board := testutil.NewTestBoard("Sprint")
	lists := testutil.NewSprintLists(nil, nil, nil,
		testutil.Cards(testutil.NewTestCard("[3] Ship it", testutil.WithMembers(m.ID))))
	fake.AddBoard(board, lists, []domain.Member{m})

	svc := setupServices(t, fake, DefaultDashboardConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	req := app.NewDashboardRequest(board.ID)
	req.Now = &now

	resp, err := svc.dashboard.Calc(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Members, 1)
	assert.Equal(t, "Mona", resp.Members[0].Member.FullName)
	assert.Equal(t, 3.0, resp.Members[0].Progress.Planned.Done)
	assert.Zero(t, resp.Members[0].Progress.Unplanned.Total())
	assert.Equal(t, 3.0, resp.Totals.Planned.Done)
	assert.Equal(t, 3.0, resp.Totals.GrandTotal())
	assert.Equal(t, 1, resp.Members[0].CardCounts[domain.StageDone])
	assert.Equal(t, "To Do", resp.IterationName)
	assert.Equal(t, board.Name, resp.Board.Name)
	assert.Equal(t, now, resp.GeneratedAt)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, map[domain.Stage]string{
		domain.StageTodo:    "To Do",
		domain.StageDoing:   "Doing",
		domain.StageTesting: "Testing",
		domain.StageDone:    "Done",
	}, resp.StageLists)
}

func TestDashboard_RanksMembersAndListsDoingCards(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	builder := testutil.NewTestMember("Bea")
	shipper := testutil.NewTestMember("Ada")
	board := testutil.NewTestBoard("Sprint")
	lists := testutil.NewSprintLists(
		nil,
		testutil.Cards(testutil.NewTestCard("[5] Build", testutil.WithMembers(builder.ID))),
		testutil.Cards(testutil.NewTestCard("[2] Review", testutil.WithMembers(builder.ID))),
		testutil.Cards(testutil.NewTestCard("[2->3] Deploy", testutil.WithMembers(shipper.ID))),
	)
	fake.AddBoard(board, lists, []domain.Member{builder, shipper})

	svc := setupServices(t, fake, DefaultDashboardConfig())
	resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	require.NoError(t, err)

	require.Len(t, resp.Members, 2)
	// Ada: done 2 planned + 1 unplanned = 3. Bea: 0.5 * 2 testing = 1.
	assert.Equal(t, "Ada", resp.Members[0].Member.FullName)
	assert.Equal(t, 3.0, resp.Members[0].Score)
	assert.Equal(t, "Bea", resp.Members[1].Member.FullName)
	assert.Equal(t, 1.0, resp.Members[1].Score)
	assert.Equal(t, []string{"[5] Build"}, resp.Members[1].DoingNames)
	assert.Empty(t, resp.Members[0].DoingNames)
}

func TestDashboard_DoingCardSplitsChecklistItems(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	m := testutil.NewTestMember("Mona")
	board := testutil.NewTestBoard("Sprint")
	card := testutil.NewTestCard("Refactor parser",
		testutil.WithMembers(m.ID),
		testutil.WithChecklist("Steps", testutil.Done("[1] lexer"), testutil.Todo("[2] grammar")),
	)
	fake.AddBoard(board, testutil.NewSprintLists(nil, testutil.Cards(card), nil, nil), []domain.Member{m})

	svc := setupServices(t, fake, DefaultDashboardConfig())
	resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	require.NoError(t, err)

	planned := resp.Members[0].Progress.Planned
	assert.Equal(t, 1.0, planned.Testing)
	assert.Equal(t, 2.0, planned.Doing)
	assert.Equal(t, 1, fake.Hits("/cards/"+card.ID+"/checklists"))
}

func TestDashboard_SharedCardCountsForEveryMember(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	a := testutil.NewTestMember("Ada")
	b := testutil.NewTestMember("Bea")
	board := testutil.NewTestBoard("Sprint")
	pair := testutil.NewTestCard("[4] Pairing", testutil.WithMembers(a.ID, b.ID))
	fake.AddBoard(board, testutil.NewSprintLists(nil, nil, nil, testutil.Cards(pair)), []domain.Member{a, b})

	svc := setupServices(t, fake, DefaultDashboardConfig())
	resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	require.NoError(t, err)

	for _, mv := range resp.Members {
		assert.Equal(t, 4.0, mv.Progress.Planned.Done, mv.Member.FullName)
	}
	assert.Equal(t, 8.0, resp.Totals.Planned.Done)
}

func TestDashboard_ValidationErrors(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	short := testutil.NewTestBoard("Short")
	fake.AddBoard(short, []domain.List{
		testutil.NewTestList("To Do"),
		testutil.NewTestList("Doing"),
		testutil.NewTestList("Done"),
	}, nil)
	gap := testutil.NewTestBoard("Gap")
	fake.AddBoard(gap, []domain.List{
		testutil.NewTestList("Backlog"),
		testutil.NewTestList("Doing"),
		testutil.NewTestList("Done"),
		testutil.NewTestList("Archive"),
	}, nil)

	tests := []struct {
		name     string
		boardID  string
		strict   bool
		wantErr  error
		wantCode app.DashboardErrorCode
	}{
		{"no board", "", false, app.ErrNoBoard, app.DashboardErrNoBoard},
		{"unknown board", "nope", false, app.ErrBoardNotFound, app.DashboardErrBoardNotFound},
		{"too few lists", short.ID, false, app.ErrNotEnoughLists, app.DashboardErrNotEnoughLists},
		{"strict missing stage", gap.ID, true, app.ErrMissingStage, app.DashboardErrMissingStage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDashboardConfig()
			cfg.StrictStages = tt.strict
			svc := setupServices(t, fake, cfg)

			resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(tt.boardID))
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, app.ClassifyError(err))
			assert.Equal(t, app.StateError, app.StateFor(err))
		})
	}
}

func TestDashboard_MissingStageWarnsByDefault(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	board := testutil.NewTestBoard("Gap")
	fake.AddBoard(board, []domain.List{
		testutil.NewTestList("Backlog"),
		testutil.NewTestList("Doing"),
		testutil.NewTestList("Done"),
		testutil.NewTestList("Archive"),
	}, nil)

	svc := setupServices(t, fake, DefaultDashboardConfig())
	resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "testing")
	assert.NotContains(t, resp.StageLists, domain.StageTesting)
}

func TestDashboard_FetchFailureAbortsCycle(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	m := testutil.NewTestMember("Mona")
	board := testutil.NewTestBoard("Sprint")
	lists := testutil.NewSprintLists(nil, nil, nil, nil)
	fake.AddBoard(board, lists, []domain.Member{m})
	fake.FailPath("/lists/"+lists[2].ID+"/cards", http.StatusInternalServerError)

	svc := setupServices(t, fake, DefaultDashboardConfig())
	resp, err := svc.dashboard.Calc(context.Background(), app.NewDashboardRequest(board.ID))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, trello.ErrAPI)
	assert.Equal(t, app.DashboardErrFetchFailed, app.ClassifyError(err))
}

func TestDashboard_BadTokenIsUnauthorized(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	board := testutil.NewTestBoard("Sprint")
	fake.AddBoard(board, testutil.NewSprintLists(nil, nil, nil, nil), nil)

	cfg := fake.Config()
	cfg.Token = "stale"
	client := trello.NewClient(cfg, nil, nil)
	matcher := mustMatcher(t)
	boards := NewBoardService(client, nil)
	svc := NewDashboardService(client, boards, matcher, DefaultDashboardConfig())

	_, err := svc.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	assert.ErrorIs(t, err, trello.ErrUnauthorized)
	assert.Equal(t, app.StateUnauthorized, app.StateFor(err))
}

func TestDashboard_RefetchesCardsButNotBoard(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	m := testutil.NewTestMember("Mona")
	board := testutil.NewTestBoard("Sprint")
	lists := testutil.NewSprintLists(nil, nil, nil, nil)
	fake.AddBoard(board, lists, []domain.Member{m})

	svc := setupServices(t, fake, DefaultDashboardConfig())
	ctx := context.Background()

	resp, err := svc.dashboard.Calc(ctx, app.NewDashboardRequest(board.ID))
	require.NoError(t, err)
	assert.Zero(t, resp.Totals.GrandTotal())

	fake.SetCards(lists[3].ID, testutil.Cards(testutil.NewTestCard("[1] Late win", testutil.WithMembers(m.ID))))

	resp, err = svc.dashboard.Calc(ctx, app.NewDashboardRequest(board.ID))
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.Totals.Planned.Done)

	assert.Equal(t, 1, fake.Hits("/boards/"+board.ID))
	assert.Equal(t, 1, fake.Hits("/members/me"))
	assert.Equal(t, 2, fake.Hits("/lists/"+lists[3].ID+"/cards"))
}

func TestDashboard_ReportsUseCase(t *testing.T) {
	fake := testutil.NewFakeTrello(t, testToken)
	board := testutil.NewTestBoard("Sprint")
	fake.AddBoard(board, testutil.NewSprintLists(nil, nil, nil, nil), nil)

	client := trello.NewClient(fake.Config(), nil, nil)
	obs := &recordingUseCaseObserver{}
	boards := NewBoardService(client, nil)
	svc := NewDashboardService(client, boards, mustMatcher(t), DefaultDashboardConfig(), obs)

	_, err := svc.Calc(context.Background(), app.NewDashboardRequest(board.ID))
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "dashboard.calc", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, board.ID, obs.events[0].Fields["board_id"])
}
