package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data", cfg.Ledger.DataDir)
	assert.Equal(t, "60s", cfg.Ledger.AutoSaveInterval)
	assert.InDelta(t, 0.1, cfg.Follow.FollowRatio, 1e-9)
	assert.True(t, cfg.Follow.DryRun)
	assert.False(t, cfg.Follow.AutoFollow)
	assert.Equal(t, 10, cfg.TopTradersCount)
	assert.True(t, cfg.Venue.SimulateFills)
}

func TestParseIntervals(t *testing.T) {
	cfg := Default()

	d, err := cfg.Ledger.ParseAutoSaveInterval()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, d)

	w, err := cfg.Follow.ParseWatchInterval()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, w)

	// empty means "use the caller's default"
	d, err = LedgerConfig{}.ParseAutoSaveInterval()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.Ledger.DataDir = "" },
			wantErr: "ledger.data_dir",
		},
		{
			name:    "bad autosave interval",
			mutate:  func(c *Config) { c.Ledger.AutoSaveInterval = "sixty" },
			wantErr: "ledger.auto_save_interval",
		},
		{
			name:    "zero follow ratio",
			mutate:  func(c *Config) { c.Follow.FollowRatio = 0 },
			wantErr: "follow.follow_ratio",
		},
		{
			name:    "ratio above one",
			mutate:  func(c *Config) { c.Follow.FollowRatio = 1.5 },
			wantErr: "follow.follow_ratio",
		},
		{
			name:    "negative min amount",
			mutate:  func(c *Config) { c.Follow.MinAmount = -1 },
			wantErr: "follow.min_amount",
		},
		{
			name: "max below min",
			mutate: func(c *Config) {
				c.Follow.MinAmount = 100
				c.Follow.MaxAmount = 50
			},
			wantErr: "follow.max_amount",
		},
		{
			name:    "bad side filter",
			mutate:  func(c *Config) { c.Follow.SideFilter = "HOLD" },
			wantErr: "follow.side_filter",
		},
		{
			name:    "win rate above one",
			mutate:  func(c *Config) { c.Filters.MinWinRate = 55 },
			wantErr: "filters.min_win_rate",
		},
		{
			name:    "smart score above hundred",
			mutate:  func(c *Config) { c.Filters.MinSmartScore = 150 },
			wantErr: "filters.min_smart_score",
		},
		{
			name:    "csv journal without file",
			mutate:  func(c *Config) { c.Journal.Type = "csv" },
			wantErr: "journal.trades_file",
		},
		{
			name:    "sqlite journal without path",
			mutate:  func(c *Config) { c.Journal.Type = "sqlite" },
			wantErr: "journal.db_path",
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal.Type = "parquet" },
			wantErr: "journal.type",
		},
		{
			name:    "zero rate limit",
			mutate:  func(c *Config) { c.Venue.RequestsPerSecond = 0 },
			wantErr: "venue.requests_per_second",
		},
		{
			name:    "zero burst",
			mutate:  func(c *Config) { c.Venue.Burst = 0 },
			wantErr: "venue.burst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
ledger:
  data_dir: /tmp/polybot
  auto_save_interval: 2m
follow:
  follow_ratio: 0.25
  min_amount: 5
  max_amount: 500
  auto_follow: true
  watch_interval: 10s
  side_filter: BUY
  dry_run: true
filters:
  min_win_rate: 0.6
  min_smart_score: 80
  exclude_tokens: ["0xjunk"]
target_wallets: ["0xaaa1"]
top_traders_count: 3
venue:
  requests_per_second: 2
  burst: 4
  simulate_fills: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/polybot", cfg.Ledger.DataDir)
	assert.Equal(t, "2m", cfg.Ledger.AutoSaveInterval)
	assert.InDelta(t, 0.25, cfg.Follow.FollowRatio, 1e-9)
	assert.True(t, cfg.Follow.AutoFollow)
	assert.Equal(t, "BUY", cfg.Follow.SideFilter)
	assert.Equal(t, []string{"0xjunk"}, cfg.Filters.ExcludeTokens)
	assert.Equal(t, []string{"0xaaa1"}, cfg.TargetWallets)
	assert.Equal(t, 3, cfg.TopTradersCount)
	assert.Equal(t, 4, cfg.Venue.Burst)
	assert.False(t, cfg.Venue.SimulateFills)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	js := `{
  "ledger": {"data_dir": "data", "auto_save_interval": "30s"},
  "follow": {"follow_ratio": 0.5, "min_amount": 1, "max_amount": 0, "watch_interval": "5s", "dry_run": true},
  "filters": {"min_win_rate": 0.5, "min_smart_score": 70},
  "top_traders_count": 10,
  "venue": {"requests_per_second": 5, "burst": 10}
}`
	require.NoError(t, os.WriteFile(path, []byte(js), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "30s", cfg.Ledger.AutoSaveInterval)
	assert.InDelta(t, 0.5, cfg.Follow.FollowRatio, 1e-9)
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("follow:\n  follow_ratio: 2\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POLYBOT_DATA_DIR", "/var/lib/polybot")
	t.Setenv("POLYBOT_AUTOSAVE_INTERVAL", "90s")
	t.Setenv("POLYBOT_DRY_RUN", "false")
	t.Setenv("POLYBOT_WATCH_INTERVAL", "30s")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  data_dir: data\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/polybot", cfg.Ledger.DataDir)
	assert.Equal(t, "90s", cfg.Ledger.AutoSaveInterval)
	assert.False(t, cfg.Follow.DryRun)
	assert.Equal(t, "30s", cfg.Follow.WatchInterval)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		orig := Default()
		orig.TargetWallets = []string{"0xaaa1", "0xbbb2"}
		require.NoError(t, orig.SaveToFile(path))

		got, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, orig, got, name)
	}
}
