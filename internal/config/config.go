package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const appName = "mediactl"

type Config struct {
	LogLevel zerolog.Level `koanf:"log_level"` // zerolog level name, e.g. "debug"
	LogFile  string        `koanf:"log_file"`  // empty means stderr

	Playback PlaybackConfig `koanf:"playback"`
	HTTP     HTTPConfig     `koanf:"http"`

	// Playback history (resume positions)
	History HistoryConfig `koanf:"history"`

	// Desktop notification when media finishes
	Notify NotifyConfig `koanf:"notify"`

	// MPRIS2 D-Bus interface
	MPRIS MPRISConfig `koanf:"mpris"`
}

// PlaybackConfig holds controller and backend tuning.
type PlaybackConfig struct {
	ProgressInterval time.Duration `koanf:"progress_interval"` // default: 250ms
	RewindOffset     time.Duration `koanf:"rewind_offset"`     // default: 10s
	Volume           float64       `koanf:"volume"`            // 0.0-1.0, default: 1.0
}

// HTTPConfig holds remote media fetching settings.
type HTTPConfig struct {
	RetryMax *int          `koanf:"retry_max"` // default: 3
	Timeout  time.Duration `koanf:"timeout"`   // default: 20s
}

// HistoryConfig holds playback history settings.
type HistoryConfig struct {
	Enabled      *bool         `koanf:"enabled"`       // default: true
	SaveInterval time.Duration `koanf:"save_interval"` // default: 5s
	DBPath       string        `koanf:"db_path"`       // empty means XDG data dir
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// MPRISConfig holds MPRIS settings.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// Load reads the standard config files and then explicit, if non-empty.
// Missing standard files are skipped; a missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return LoadFiles(paths...)
}

// LoadFiles merges the existing files among paths, last wins.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		LogLevel: zerolog.InfoLevel,
	}

	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToLevelHook(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	if cfg.History.DBPath != "" {
		cfg.History.DBPath = expandPath(cfg.History.DBPath)
	}

	return cfg, nil
}

// stringToLevelHook decodes zerolog level names.
func stringToLevelHook() mapstructure.DecodeHookFuncType {
	levelType := reflect.TypeFor[zerolog.Level]()
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != levelType {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return zerolog.InfoLevel, nil
		}
		return zerolog.ParseLevel(strings.ToLower(s))
	}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/mediactl/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 250 * time.Millisecond
	}
	if cfg.RewindOffset < 0 {
		cfg.RewindOffset = 0
	} else if cfg.RewindOffset == 0 {
		cfg.RewindOffset = 10 * time.Second
	}
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 1
	}

	return cfg
}

// GetHTTPConfig returns the HTTP configuration with defaults applied.
func (c *Config) GetHTTPConfig() HTTPConfig {
	cfg := c.HTTP

	if cfg.RetryMax == nil || *cfg.RetryMax < 0 {
		retries := 3
		cfg.RetryMax = &retries
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	return cfg
}

// GetHistoryConfig returns the history configuration with defaults applied.
// DBPath stays empty when unset; the history store picks the XDG location.
func (c *Config) GetHistoryConfig() HistoryConfig {
	cfg := c.History

	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.SaveInterval <= 0 {
		cfg.SaveInterval = 5 * time.Second
	}

	return cfg
}

// HistoryEnabled returns true unless history is explicitly disabled.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// NotifyEnabled returns true unless notifications are explicitly disabled.
func (c *Config) NotifyEnabled() bool {
	return c.Notify.Enabled == nil || *c.Notify.Enabled
}

// MPRISEnabled returns true unless MPRIS is explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}
