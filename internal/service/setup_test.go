package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/chewy/internal/points"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/testutil"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

type services struct {
	client    trello.Client
	settings  *repository.SQLiteSettingsRepo
	boards    BoardService
	dashboard DashboardService
}

func setupServices(t *testing.T, fake *testutil.FakeTrello, cfg DashboardConfig) services {
	t.Helper()
	client := trello.NewClient(fake.Config(), trello.NewMemoryCache(), nil)
	settings := repository.NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	boards := NewBoardService(client, settings)
	return services{
		client:    client,
		settings:  settings,
		boards:    boards,
		dashboard: NewDashboardService(client, boards, mustMatcher(t), cfg),
	}
}

func mustMatcher(t *testing.T) *points.StageMatcher {
	t.Helper()
	m, err := points.NewStageMatcher(nil, true)
	require.NoError(t, err)
	return m
}

type recordingUseCaseObserver struct {
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
