package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedDashboards struct {
	mu      sync.Mutex
	results []error
	calls   []string
}

func (s *scriptedDashboards) Calc(_ context.Context, req app.DashboardRequest) (*app.DashboardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.BoardID)

	var err error
	if len(s.results) > 0 {
		err, s.results = s.results[0], s.results[1:]
	}
	if err != nil {
		return nil, err
	}
	return &app.DashboardResponse{
		Board:  domain.Board{ID: req.BoardID, Name: "Board " + req.BoardID},
		Totals: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 1}},
	}, nil
}

func TestWatcher_SnapshotLifecycle(t *testing.T) {
	dash := &scriptedDashboards{results: []error{nil, trello.ErrUnauthorized, errors.New("boom")}}
	updates := make(chan Snapshot, 10)
	w := NewWatcher(dash, "b1", time.Hour, WithOnUpdate(func(s Snapshot) { updates <- s }))

	assert.Equal(t, app.StateLoading, w.Snapshot().State)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	first := next(t, updates)
	assert.Equal(t, app.StateActive, first.State)
	require.NotNil(t, first.Dashboard)
	assert.Equal(t, "b1", first.Dashboard.Board.ID)
	assert.NotEmpty(t, first.Cycle)

	w.Refresh()
	second := next(t, updates)
	assert.Equal(t, app.StateUnauthorized, second.State)
	assert.Nil(t, second.Dashboard, "a failed cycle drops the previous dashboard")
	assert.ErrorIs(t, second.Err, trello.ErrUnauthorized)
	assert.NotEqual(t, first.Cycle, second.Cycle)

	w.Refresh()
	third := next(t, updates)
	assert.Equal(t, app.StateError, third.State)
	assert.Equal(t, third, w.Snapshot())
}

func TestWatcher_SetBoard(t *testing.T) {
	dash := &scriptedDashboards{}
	updates := make(chan Snapshot, 10)
	w := NewWatcher(dash, "b1", time.Hour, WithOnUpdate(func(s Snapshot) { updates <- s }))

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()
	next(t, updates)

	w.SetBoard("b2")
	assert.Equal(t, "b2", w.BoardID())

	snap := next(t, updates)
	assert.Equal(t, "b2", snap.BoardID)
	assert.Equal(t, "b2", snap.Dashboard.Board.ID)
}

func next(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(wait):
		t.Fatal("timed out waiting for a snapshot")
		return Snapshot{}
	}
}
