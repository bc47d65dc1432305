package config

import (
	"os"
	"strconv"
	"time"
)

func applyEnv(cfg *Config) {
	envString("CHEWY_TRELLO_KEY", &cfg.Trello.Key)
	envString("CHEWY_TRELLO_TOKEN", &cfg.Trello.Token)
	envString("CHEWY_TRELLO_ENDPOINT", &cfg.Trello.Endpoint)
	envDuration("CHEWY_TRELLO_TIMEOUT", &cfg.Trello.Timeout)
	envString("CHEWY_DB", &cfg.DBPath)
	envString("CHEWY_LOG_FILE", &cfg.LogFile)
	envString("CHEWY_ADDR", &cfg.Server.Addr)
	envDuration("CHEWY_POLL_INTERVAL", &cfg.Poll.Interval)
	envDuration("CHEWY_STATUSBOARD_RELOAD_DELAY", &cfg.Poll.StatusboardReloadDelay)
	envBool("CHEWY_PERSIST_CACHE", &cfg.Cache.Persist)
	envBool("CHEWY_CACHE_ALL", &cfg.Cache.All)
	envBool("CHEWY_STRICT_STAGES", &cfg.Board.StrictStages)
	if v := os.Getenv("CHEWY_MIN_LISTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Board.MinLists = n
		}
	}
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
