package cli

import (
	"context"
	"sync"

	chewyapp "github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/config"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/trello"
)

type stubDashboards struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (s *stubDashboards) Calc(_ context.Context, req chewyapp.DashboardRequest) (*chewyapp.DashboardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req.BoardID)
	if s.err != nil {
		return nil, s.err
	}
	return &chewyapp.DashboardResponse{
		Board:         domain.Board{ID: req.BoardID, Name: "Board " + req.BoardID},
		IterationName: "Sprint 7",
		Members: []chewyapp.MemberView{{
			Member:   domain.Member{ID: "m1", FullName: "Mona Lisa"},
			Progress: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 3}},
			Score:    3,
		}},
		Totals: domain.ProgressPair{Planned: domain.ProgressTotals{Done: 3}},
	}, nil
}

func (s *stubDashboards) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubDashboards) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type stubBoards struct {
	mu     sync.Mutex
	boards []domain.Board
	last   string
}

func (s *stubBoards) ListBoards(context.Context) (*chewyapp.BoardList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := &chewyapp.BoardList{Boards: s.boards, ByID: map[string]domain.Board{}, LastBoard: s.last}
	for _, b := range s.boards {
		list.ByID[b.ID] = b
	}
	return list, nil
}

func (s *stubBoards) LastBoard(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, nil
}

func (s *stubBoards) RememberBoard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = id
	return nil
}

func (s *stubBoards) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func newTestApp() (*App, *stubDashboards, *stubBoards) {
	dash := &stubDashboards{}
	boards := &stubBoards{boards: []domain.Board{
		{ID: "b1", Name: "Alpha"},
		{ID: "b2", Name: "Beta"},
	}}
	cfg := config.DefaultConfig()
	cfg.Trello.Key = "test-key"
	return &App{
		Config:    cfg,
		Boards:    boards,
		Dashboard: dash,
		Cache:     trello.NewMemoryCache(),
	}, dash, boards
}

type stubAuth struct {
	mu     sync.Mutex
	stored string
}

func (s *stubAuth) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored, nil
}

func (s *stubAuth) Verify(_ context.Context, token string) (*domain.Me, error) {
	if token != "good-token" {
		return nil, trello.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = token
	return &domain.Me{ID: "m1", Username: "mona", FullName: "Mona Lisa"}, nil
}

func (s *stubAuth) Forget(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = ""
	return nil
}
