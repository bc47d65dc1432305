// Package config loads chewy's settings from defaults, an optional YAML
// file, an optional .env file and CHEWY_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/points"
	"github.com/alexanderramin/chewy/internal/trello"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envFile = ".env"

type Config struct {
	Trello  TrelloConfig `yaml:"trello"`
	Cache   CacheConfig  `yaml:"cache"`
	Board   BoardConfig  `yaml:"board"`
	Poll    PollConfig   `yaml:"poll"`
	Server  ServerConfig `yaml:"server"`
	DBPath  string       `yaml:"db_path"`
	LogFile string       `yaml:"log_file"`
}

type TrelloConfig struct {
	Key      string        `yaml:"key"`
	Token    string        `yaml:"token"`
	Endpoint string        `yaml:"endpoint"`
	AppName  string        `yaml:"app_name"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	// Persist keeps board lookups in SQLite across runs.
	Persist bool `yaml:"persist"`
	// All caches every Trello call, not only board lookups.
	All bool `yaml:"all"`
}

type BoardConfig struct {
	MinLists        int               `yaml:"min_lists"`
	StrictStages    bool              `yaml:"strict_stages"`
	FirstListIsTodo bool              `yaml:"first_list_is_todo"`
	StagePatterns   map[string]string `yaml:"stage_patterns"`
}

type PollConfig struct {
	Interval               time.Duration `yaml:"interval"`
	StatusboardReloadDelay time.Duration `yaml:"statusboard_reload_delay"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultDir is ~/.chewy, or .chewy when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chewy"
	}
	return filepath.Join(home, ".chewy")
}

// DefaultConfig returns a Config with sensible defaults. Trello credentials
// are left empty.
func DefaultConfig() *Config {
	tc := trello.DefaultConfig()
	dir := DefaultDir()
	return &Config{
		Trello: TrelloConfig{
			Endpoint: tc.Endpoint,
			AppName:  tc.AppName,
			Timeout:  tc.Timeout,
		},
		Board: BoardConfig{
			MinLists:        4,
			FirstListIsTodo: true,
		},
		Poll: PollConfig{
			Interval:               5 * time.Second,
			StatusboardReloadDelay: 10 * time.Second,
		},
		Server:  ServerConfig{Addr: ":8080"},
		DBPath:  filepath.Join(dir, "chewy.db"),
		LogFile: filepath.Join(dir, "chewy.log"),
	}
}

// Load builds the configuration. An explicit path must exist; otherwise
// CHEWY_CONFIG or ~/.chewy/config.yaml is read when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CHEWY_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = filepath.Join(DefaultDir(), "config.yaml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Poll.Interval <= 0 {
		return errors.New("poll.interval must be positive")
	}
	if c.Poll.StatusboardReloadDelay < 0 {
		return errors.New("poll.statusboard_reload_delay must not be negative")
	}
	if c.Board.MinLists < 1 {
		return errors.New("board.min_lists must be at least 1")
	}
	if c.Trello.Endpoint == "" {
		return errors.New("trello.endpoint is required")
	}
	if _, err := c.StageMatcher(); err != nil {
		return err
	}
	return nil
}

// TrelloClientConfig converts the trello section into a client config.
// token, when non-empty, overrides the configured token.
func (c *Config) TrelloClientConfig(token string) trello.Config {
	tc := trello.Config{
		Key:      c.Trello.Key,
		Token:    c.Trello.Token,
		Endpoint: c.Trello.Endpoint,
		AppName:  c.Trello.AppName,
		Timeout:  c.Trello.Timeout,
		CacheAll: c.Cache.All,
	}
	if token != "" {
		tc.Token = token
	}
	return tc
}

// StageMatcher compiles the configured stage patterns.
func (c *Config) StageMatcher() (*points.StageMatcher, error) {
	patterns := make(map[domain.Stage]string, len(c.Board.StagePatterns))
	for name, expr := range c.Board.StagePatterns {
		stage, err := domain.ParseStage(name)
		if err != nil {
			return nil, fmt.Errorf("board.stage_patterns: %w", err)
		}
		patterns[stage] = expr
	}
	m, err := points.NewStageMatcher(patterns, c.Board.FirstListIsTodo)
	if err != nil {
		return nil, fmt.Errorf("board.stage_patterns: %w", err)
	}
	return m, nil
}
