package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete follower configuration.
type Config struct {
	Ledger          LedgerConfig  `json:"ledger" yaml:"ledger"`
	Journal         JournalConfig `json:"journal" yaml:"journal"`
	Follow          FollowConfig  `json:"follow" yaml:"follow"`
	Filters         FilterConfig  `json:"filters" yaml:"filters"`
	TargetWallets   []string      `json:"target_wallets,omitempty" yaml:"target_wallets,omitempty"`
	TopTradersCount int           `json:"top_traders_count" yaml:"top_traders_count"`
	Venue           VenueConfig   `json:"venue" yaml:"venue"`
}

// LedgerConfig contains ledger persistence parameters.
type LedgerConfig struct {
	// DataDir holds the profit-history snapshot. Relative to the working
	// directory, created on demand.
	DataDir string `json:"data_dir" yaml:"data_dir"`
	// AutoSaveInterval is the autosave debounce delay, e.g. "60s", "2m".
	AutoSaveInterval string `json:"auto_save_interval" yaml:"auto_save_interval"`
}

// ParseAutoSaveInterval converts the delay string to a time.Duration.
func (lc LedgerConfig) ParseAutoSaveInterval() (time.Duration, error) {
	if lc.AutoSaveInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(lc.AutoSaveInterval)
}

// JournalConfig contains the optional trade-mirror sink parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// FollowConfig contains copy-trade sizing and polling parameters.
type FollowConfig struct {
	// FollowRatio scales a source trade's notional, 0 < ratio <= 1.
	FollowRatio float64 `json:"follow_ratio" yaml:"follow_ratio"`
	MinAmount   float64 `json:"min_amount" yaml:"min_amount"`
	MaxAmount   float64 `json:"max_amount" yaml:"max_amount"`
	AutoFollow  bool    `json:"auto_follow" yaml:"auto_follow"`
	// WatchInterval is how often the follower polls each wallet, e.g. "5s".
	WatchInterval string `json:"watch_interval" yaml:"watch_interval"`
	// SideFilter restricts copying to "BUY" or "SELL"; empty copies both.
	SideFilter string `json:"side_filter,omitempty" yaml:"side_filter,omitempty"`
	DryRun     bool   `json:"dry_run" yaml:"dry_run"`
}

// ParseWatchInterval converts the poll delay string to a time.Duration.
func (fc FollowConfig) ParseWatchInterval() (time.Duration, error) {
	if fc.WatchInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(fc.WatchInterval)
}

// FilterConfig contains wallet selection filters applied to venue profiles.
type FilterConfig struct {
	MinWinRate    float64  `json:"min_win_rate" yaml:"min_win_rate"`       // 0..1
	MinSmartScore float64  `json:"min_smart_score" yaml:"min_smart_score"` // 0..100
	ExcludeTokens []string `json:"exclude_tokens,omitempty" yaml:"exclude_tokens,omitempty"`
}

// VenueConfig contains venue client throttling parameters.
type VenueConfig struct {
	// RequestsPerSecond caps outbound venue calls; Burst is the limiter
	// bucket size.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `json:"burst" yaml:"burst"`
	// SimulateFills makes the paper venue fill every order. When false,
	// orders are refused and land in the ledger as dry-run failures.
	SimulateFills bool `json:"simulate_fills" yaml:"simulate_fills"`
}

// LoadFromFile loads configuration from a file (YAML or JSON), then applies
// environment overrides and validates.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// applyEnv layers environment variables over file values. A .env file in
// the working directory is honored when present; missing variables leave
// the file values alone.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("POLYBOT_DATA_DIR"); v != "" {
		c.Ledger.DataDir = v
	}
	if v := os.Getenv("POLYBOT_AUTOSAVE_INTERVAL"); v != "" {
		c.Ledger.AutoSaveInterval = v
	}
	if v := os.Getenv("POLYBOT_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Follow.DryRun = b
		}
	}
	if v := os.Getenv("POLYBOT_WATCH_INTERVAL"); v != "" {
		c.Follow.WatchInterval = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Ledger.DataDir == "" {
		return fmt.Errorf("ledger.data_dir is required")
	}
	if _, err := c.Ledger.ParseAutoSaveInterval(); err != nil {
		return fmt.Errorf("ledger.auto_save_interval: %w", err)
	}
	if c.Follow.FollowRatio <= 0 || c.Follow.FollowRatio > 1 {
		return fmt.Errorf("follow.follow_ratio must be between 0 and 1")
	}
	if c.Follow.MinAmount < 0 {
		return fmt.Errorf("follow.min_amount must not be negative")
	}
	if c.Follow.MaxAmount > 0 && c.Follow.MaxAmount < c.Follow.MinAmount {
		return fmt.Errorf("follow.max_amount must be >= follow.min_amount")
	}
	if _, err := c.Follow.ParseWatchInterval(); err != nil {
		return fmt.Errorf("follow.watch_interval: %w", err)
	}
	if s := c.Follow.SideFilter; s != "" && s != "BUY" && s != "SELL" {
		return fmt.Errorf("follow.side_filter must be 'BUY' or 'SELL'")
	}
	if c.Filters.MinWinRate < 0 || c.Filters.MinWinRate > 1 {
		return fmt.Errorf("filters.min_win_rate must be between 0 and 1")
	}
	if c.Filters.MinSmartScore < 0 || c.Filters.MinSmartScore > 100 {
		return fmt.Errorf("filters.min_smart_score must be between 0 and 100")
	}
	switch c.Journal.Type {
	case "":
		// journaling disabled
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Venue.RequestsPerSecond <= 0 {
		return fmt.Errorf("venue.requests_per_second must be positive")
	}
	if c.Venue.Burst <= 0 {
		return fmt.Errorf("venue.burst must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			DataDir:          "data",
			AutoSaveInterval: "60s",
		},
		Follow: FollowConfig{
			FollowRatio:   0.1,
			MinAmount:     10,
			MaxAmount:     1000,
			AutoFollow:    false,
			WatchInterval: "5s",
			DryRun:        true,
		},
		Filters: FilterConfig{
			MinWinRate:    0.5,
			MinSmartScore: 70,
		},
		TopTradersCount: 10,
		Venue: VenueConfig{
			RequestsPerSecond: 5,
			Burst:             10,
			SimulateFills:     true,
		},
	}
}
