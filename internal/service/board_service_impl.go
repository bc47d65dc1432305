package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/trello"
	"golang.org/x/sync/errgroup"
)

type boardService struct {
	client   trello.Client
	settings repository.SettingsRepo
	observer UseCaseObserver
}

// NewBoardService creates a BoardService. settings may be nil, in which case
// no board is remembered.
func NewBoardService(client trello.Client, settings repository.SettingsRepo, observers ...UseCaseObserver) BoardService {
	return &boardService{
		client:   client,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *boardService) ListBoards(ctx context.Context) (list *app.BoardList, err error) {
	start := timeNow()
	defer func() {
		fields := map[string]any{}
		if list != nil {
			fields["boards"] = len(list.Boards)
		}
		observe(ctx, s.observer, "boards.list", start, err, fields)
	}()

	me, err := s.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading current member: %w", err)
	}

	boards := make([]domain.Board, len(me.IDBoards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range me.IDBoards {
		g.Go(func() error {
			b, err := s.client.Board(gctx, id)
			if err != nil {
				return fmt.Errorf("loading board %s: %w", id, err)
			}
			boards[i] = *b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(boards, func(i, j int) bool {
		return strings.ToLower(boards[i].Name) < strings.ToLower(boards[j].Name)
	})

	list = &app.BoardList{
		Boards: boards,
		ByID:   make(map[string]domain.Board, len(boards)),
	}
	for _, b := range boards {
		list.ByID[b.ID] = b
	}

	last, err := s.LastBoard(ctx)
	if err != nil {
		return nil, err
	}
	if list.Contains(last) {
		list.LastBoard = last
	}
	return list, nil
}

// LastBoard returns the remembered board id, or "" when there is none.
func (s *boardService) LastBoard(ctx context.Context) (string, error) {
	if s.settings == nil {
		return "", nil
	}
	id, err := s.settings.Get(ctx, repository.SettingLastBoard)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading last board: %w", err)
	}
	return id, nil
}

func (s *boardService) RememberBoard(ctx context.Context, boardID string) error {
	if s.settings == nil || boardID == "" {
		return nil
	}
	if err := s.settings.Set(ctx, repository.SettingLastBoard, boardID); err != nil {
		return fmt.Errorf("remembering board: %w", err)
	}
	return nil
}
