package repository

import "context"

// Setting keys persisted in the settings table.
const (
	SettingLastBoard   = "last_board_id"
	SettingTrelloToken = "trello_token"
)

type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type ResponseCacheRepo interface {
	Lookup(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, body []byte) error
	Purge(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
