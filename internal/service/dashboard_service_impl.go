package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/points"
	"github.com/alexanderramin/chewy/internal/trello"
	"golang.org/x/sync/errgroup"
)

// DashboardConfig holds the board validation policy.
type DashboardConfig struct {
	MinLists     int
	StrictStages bool
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{MinLists: 4}
}

type dashboardService struct {
	client   trello.Client
	boards   BoardService
	matcher  *points.StageMatcher
	cfg      DashboardConfig
	observer UseCaseObserver
}

func NewDashboardService(
	client trello.Client,
	boards BoardService,
	matcher *points.StageMatcher,
	cfg DashboardConfig,
	observers ...UseCaseObserver,
) DashboardService {
	return &dashboardService{
		client:   client,
		boards:   boards,
		matcher:  matcher,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) Calc(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	start := timeNow()
	defer func() {
		fields := map[string]any{"board_id": req.BoardID}
		if resp != nil {
			fields["members"] = len(resp.Members)
			fields["warnings"] = len(resp.Warnings)
		}
		observe(ctx, s.observer, "dashboard.calc", start, err, fields)
	}()

	if req.BoardID == "" {
		return nil, app.ErrNoBoard
	}

	boards, err := s.boards.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	board, ok := boards.ByID[req.BoardID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", app.ErrBoardNotFound, req.BoardID)
	}

	lists, members, err := s.fetchBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	if len(lists) < s.cfg.MinLists {
		return nil, fmt.Errorf("%w: %q has %d, need %d", app.ErrNotEnoughLists, board.Name, len(lists), s.cfg.MinLists)
	}

	resolved := s.matcher.Resolve(lists)
	var warnings []string
	if missing := points.Missing(resolved); len(missing) > 0 {
		if s.cfg.StrictStages {
			return nil, fmt.Errorf("%w: %v", app.ErrMissingStage, missing)
		}
		for _, stage := range missing {
			warnings = append(warnings, fmt.Sprintf("no list matches stage %q; its cards are not counted", stage))
		}
	}

	agg := points.Aggregate(points.CardsByStage(resolved), members)
	points.Rank(agg.Members)

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	resp = &app.DashboardResponse{
		Board:         board,
		IterationName: lists[0].Name,
		Members:       buildMemberViews(agg.Members),
		Totals:        agg.Board,
		StageLists:    make(map[domain.Stage]string, len(resolved)),
		Warnings:      warnings,
		GeneratedAt:   now,
	}
	for stage, l := range resolved {
		resp.StageLists[stage] = l.Name
	}
	return resp, nil
}

func buildMemberViews(members []domain.MemberProgress) []app.MemberView {
	views := make([]app.MemberView, 0, len(members))
	for _, mp := range members {
		counts := make(map[domain.Stage]int, len(domain.Stages))
		for _, stage := range domain.Stages {
			counts[stage] = len(mp.Cards[stage])
		}
		views = append(views, app.MemberView{
			Member:     mp.Member,
			Progress:   mp.Progress,
			Score:      mp.Progress.DoneScore(),
			DoingNames: mp.DoingNames(),
			CardCounts: counts,
		})
	}
	return views
}

// fetchBoard loads lists (with cards and checklists) and member profiles
// concurrently. The first failure cancels the rest.
func (s *dashboardService) fetchBoard(ctx context.Context, boardID string) ([]domain.List, []domain.Member, error) {
	var (
		lists   []domain.List
		members []domain.Member
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lists, err = s.fetchLists(gctx, boardID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.fetchMembers(gctx, boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return lists, members, nil
}

func (s *dashboardService) fetchLists(ctx context.Context, boardID string) ([]domain.List, error) {
	lists, err := s.client.BoardLists(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading lists: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i := range lists {
		g.Go(func() error {
			cards, err := s.fetchCards(gctx, lists[i].ID)
			if err != nil {
				return err
			}
			lists[i].Cards = cards
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *dashboardService) fetchCards(ctx context.Context, listID string) ([]domain.Card, error) {
	cards, err := s.client.ListCards(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("loading cards of list %s: %w", listID, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i := range cards {
		g.Go(func() error {
			cls, err := s.client.CardChecklists(gctx, cards[i].ID)
			if err != nil {
				return fmt.Errorf("loading checklists of card %s: %w", cards[i].ID, err)
			}
			cards[i].Checklists = cls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *dashboardService) fetchMembers(ctx context.Context, boardID string) ([]domain.Member, error) {
	ids, err := s.client.BoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("loading members: %w", err)
	}

	members := make([]domain.Member, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, m := range ids {
		g.Go(func() error {
			profile, err := s.client.Member(gctx, m.ID)
			if err != nil {
				return fmt.Errorf("loading member %s: %w", m.ID, err)
			}
			members[i] = *profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}
