package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/repository"
	"github.com/alexanderramin/chewy/internal/trello"
)

// ClientFactory builds a Trello client authenticated with token.
type ClientFactory func(token string) trello.Client

type authService struct {
	settings  repository.SettingsRepo
	newClient ClientFactory
	observer  UseCaseObserver
}

func NewAuthService(settings repository.SettingsRepo, newClient ClientFactory, observers ...UseCaseObserver) AuthService {
	return &authService{
		settings:  settings,
		newClient: newClient,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Token returns the stored token, or "" when none was saved.
func (s *authService) Token(ctx context.Context) (string, error) {
	token, err := s.settings.Get(ctx, repository.SettingTrelloToken)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading token: %w", err)
	}
	return token, nil
}

// Verify checks token against Trello and stores it when accepted.
func (s *authService) Verify(ctx context.Context, token string) (me *domain.Me, err error) {
	start := timeNow()
	defer func() {
		fields := map[string]any{}
		if me != nil {
			fields["username"] = me.Username
		}
		observe(ctx, s.observer, "auth.verify", start, err, fields)
	}()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	me, err = s.newClient(token).Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("verifying token: %w", err)
	}
	if err := s.settings.Set(ctx, repository.SettingTrelloToken, token); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}
	return me, nil
}

func (s *authService) Forget(ctx context.Context) error {
	if err := s.settings.Delete(ctx, repository.SettingTrelloToken); err != nil {
		return fmt.Errorf("forgetting token: %w", err)
	}
	return nil
}
