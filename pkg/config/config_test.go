package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/zfogg/swipefeed/pkg/feed"
)

// TestGetConfigDir validates config directory access
func TestGetConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	configDir := GetConfigDir()
	if configDir != tempDir {
		t.Fatalf("Expected config dir %s, got %s", tempDir, configDir)
	}

	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "custom", "path")
	if GetConfigDir() != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, GetConfigDir())
	}
	if GetCredentialsPath() != filepath.Join(expectedDir, "credentials") {
		t.Errorf("Unexpected credentials path %s", GetCredentialsPath())
	}
}

// TestDefaults validates the development defaults
func TestDefaults(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	tests := []struct {
		key  string
		want interface{}
		got  interface{}
	}{
		{"api.base_url", "http://localhost:8787", GetString("api.base_url")},
		{"api.timeout", 10, GetInt("api.timeout")},
		{"feed.page_size", 10, GetInt("feed.page_size")},
		{"feed.prefetch_threshold", 3, GetInt("feed.prefetch_threshold")},
		{"gesture.scroll_threshold", 20, GetInt("gesture.scroll_threshold")},
		{"gesture.commit_threshold", 50, GetInt("gesture.commit_threshold")},
		{"playback.advance_delay_ms", 500, GetInt("playback.advance_delay_ms")},
		{"live.enabled", false, GetBool("live.enabled")},
		{"log.level", "info", GetString("log.level")},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s: got %v, want %v", tt.key, tt.got, tt.want)
			}
		})
	}
}

// TestUserConfigOverridesDefaults validates TOML loading
func TestUserConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[feed]\npage_size = 25\n\n[gesture]\ncommit_threshold = 80\n"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	t.Cleanup(func() {
		Set("feed.page_size", feed.DefaultPageSize)
		Set("gesture.commit_threshold", feed.DefaultCommitThreshold)
	})

	if got := GetInt("feed.page_size"); got != 25 {
		t.Errorf("feed.page_size: got %d, want 25", got)
	}

	opts := FeedOptions()
	if opts.PageSize != 25 {
		t.Errorf("FeedOptions page size: got %d, want 25", opts.PageSize)
	}
	if opts.Thresholds.Commit != 80 {
		t.Errorf("FeedOptions commit threshold: got %v, want 80", opts.Thresholds.Commit)
	}
	if opts.Thresholds.Scroll != feed.DefaultScrollThreshold {
		t.Errorf("FeedOptions scroll threshold: got %v", opts.Thresholds.Scroll)
	}
}

// TestFeedOptionsDurations validates unit conversion
func TestFeedOptionsDurations(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	opts := FeedOptions()
	if opts.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout: got %v, want 10s", opts.FetchTimeout)
	}
	if opts.AdvanceDelay != 500*time.Millisecond {
		t.Errorf("AdvanceDelay: got %v, want 500ms", opts.AdvanceDelay)
	}
	if opts.Muted {
		t.Error("Muted should default to false")
	}
}

// TestExpandPath validates tilde expansion
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/logs/feed.log"); got != filepath.Join(home, "logs/feed.log") {
		t.Errorf("expandPath: got %s", got)
	}
	if got := expandPath("/var/log/feed.log"); got != "/var/log/feed.log" {
		t.Errorf("expandPath should leave absolute paths alone, got %s", got)
	}
}

// TestEnvOverridesDefaults validates SWIPEFEED_ variables for nested keys
func TestEnvOverridesDefaults(t *testing.T) {
	// Drop overrides left by Set in earlier tests; they outrank the environment.
	viper.Reset()
	t.Setenv("SWIPEFEED_API_TOKEN", "from-env")
	t.Setenv("SWIPEFEED_FEED_PAGE_SIZE", "25")

	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	if got := GetString("api.token"); got != "from-env" {
		t.Errorf("api.token: got %q, want from-env", got)
	}
	if got := FeedOptions().PageSize; got != 25 {
		t.Errorf("FeedOptions page size: got %d, want 25", got)
	}
	if got := GetInt("feed.prefetch_threshold"); got != feed.DefaultPrefetchThreshold {
		t.Errorf("feed.prefetch_threshold: got %d, want default", got)
	}
}

// TestConfigFilePath validates the user config location
func TestConfigFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if GetConfigFilePath() != path {
		t.Errorf("Expected config file %s, got %s", path, GetConfigFilePath())
	}
}
