package service

import (
	"context"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
)

type AuthService interface {
	Token(ctx context.Context) (string, error)
	Verify(ctx context.Context, token string) (*domain.Me, error)
	Forget(ctx context.Context) error
}

type BoardService interface {
	ListBoards(ctx context.Context) (*app.BoardList, error)
	LastBoard(ctx context.Context) (string, error)
	RememberBoard(ctx context.Context, boardID string) error
}

type DashboardService interface {
	Calc(ctx context.Context, req app.DashboardRequest) (*app.DashboardResponse, error)
}
