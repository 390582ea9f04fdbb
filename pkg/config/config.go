package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/zfogg/swipefeed/pkg/feed"
)

var configDir string
var configFilePath string
var credentialsPath string

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\swipefeed
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "swipefeed"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/swipefeed
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "swipefeed"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "swipefeed", "config.toml")}
	}

	return []string{
		"/etc/swipefeed/config.toml",
		"/usr/local/etc/swipefeed/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	credentialsPath = filepath.Join(configDir, "credentials")

	viper.SetConfigType("toml")
	viper.SetEnvPrefix("SWIPEFEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// System config is the foundation, user config overrides it
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break
		}
	}

	viper.SetConfigFile(configFilePath)
	_ = viper.MergeInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8787")
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.timeout", int(feed.DefaultFetchTimeout/time.Second))
	viper.SetDefault("api.interaction_rate", 5)

	viper.SetDefault("feed.page_size", feed.DefaultPageSize)
	viper.SetDefault("feed.prefetch_threshold", feed.DefaultPrefetchThreshold)
	viper.SetDefault("feed.window_radius", 1)

	viper.SetDefault("gesture.scroll_threshold", feed.DefaultScrollThreshold)
	viper.SetDefault("gesture.commit_threshold", feed.DefaultCommitThreshold)
	viper.SetDefault("gesture.row_pixels", 16)

	viper.SetDefault("playback.muted", false)
	viper.SetDefault("playback.advance_delay_ms", int(feed.DefaultAdvanceDelay/time.Millisecond))

	viper.SetDefault("live.enabled", false)
	viper.SetDefault("live.host", "localhost")
	viper.SetDefault("live.port", 8787)
	viper.SetDefault("live.path", "/api/v1/ws")
	viper.SetDefault("live.tls", false)

	viper.SetDefault("demo.size", 60)
	viper.SetDefault("demo.seed", 1)

	viper.SetDefault("output.format", "text")
	viper.SetDefault("metrics.addr", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "swipefeed.log"))
	viper.SetDefault("log.max_size_mb", 10)
	viper.SetDefault("log.max_backups", 3)
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat returns a float configuration value
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration reads an integer key expressed in unit
func GetDuration(key string, unit time.Duration) time.Duration {
	return time.Duration(viper.GetInt(key)) * unit
}

// Set overrides a value for the current process only
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// FeedOptions builds engine options from the feed, gesture and playback keys.
// Collaborators and callbacks are left for the caller to fill in.
func FeedOptions() feed.Options {
	opts := feed.DefaultOptions()
	opts.PageSize = GetInt("feed.page_size")
	opts.PrefetchThreshold = GetInt("feed.prefetch_threshold")
	opts.WindowRadius = GetInt("feed.window_radius")
	opts.FetchTimeout = GetDuration("api.timeout", time.Second)
	opts.Thresholds = feed.Thresholds{
		Scroll: GetFloat("gesture.scroll_threshold"),
		Commit: GetFloat("gesture.commit_threshold"),
	}
	opts.Muted = GetBool("playback.muted")
	opts.AdvanceDelay = GetDuration("playback.advance_delay_ms", time.Millisecond)
	return opts
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFilePath returns the user config file path
func GetConfigFilePath() string {
	return configFilePath
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() string {
	return credentialsPath
}
