package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so yaml values like "45m" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Retention RetentionConfig `yaml:"retention"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	State     StateConfig     `yaml:"state"`
	Output    OutputConfig    `yaml:"output"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

type ProvidersConfig struct {
	// Order fixes the fold sequence; merging is greedy and order-dependent,
	// so this is explicit configuration, not an accident of iteration.
	Order     []string      `yaml:"order"`
	Timeout   Duration      `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	CDNLive   CDNLiveConfig `yaml:"cdnlive"`
	PPVLand   PPVLandConfig `yaml:"ppvland"`
}

type CDNLiveConfig struct {
	URL     string `yaml:"url"` // env CDNLIVE_API_URL overrides
	RootKey string `yaml:"root_key"`
}

type PPVLandConfig struct {
	URL string `yaml:"url"` // env PPVLAND_API_URL overrides
	// Categories is the source→canonical allow-list; empty uses the
	// built-in table.
	Categories map[string]string `yaml:"categories"`
}

type MatcherConfig struct {
	TimeWindow          Duration `yaml:"time_window"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
}

type RetentionConfig struct {
	Default     Duration            `yaml:"default"`
	PerCategory map[string]Duration `yaml:"per_category"`
	FutureBound Duration            `yaml:"future_bound"`
}

type CatalogConfig struct {
	DisplayPriority  []string `yaml:"display_priority"`
	PreferredRegions []string `yaml:"preferred_regions"`
}

type StateConfig struct {
	Path string `yaml:"path"`
}

type OutputConfig struct {
	HTMLPath string `yaml:"html_path"`
	M3UPath  string `yaml:"m3u_path"`
	// TimeOffset shifts the clock shown in playlist titles (players have no
	// client-side rendering); the HTML page converts in the browser instead.
	TimeOffset Duration `yaml:"time_offset"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // env TELEGRAM_BOT_TOKEN overrides
	ChatID   int64  `yaml:"chat_id"`   // env TELEGRAM_CHAT_ID overrides
}

// Load reads the yaml config and applies env overrides. A missing config
// file is not an error: everything has a default and the endpoints normally
// arrive via environment variables anyway.
func Load(configPath string) (*Config, error) {
	// .env values become process env before the override pass (may not exist).
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("Config file not found, using defaults", "path", configPath)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Order:   []string{"cdnlive", "ppvland"},
			Timeout: Duration(20 * time.Second),
			CDNLive: CDNLiveConfig{RootKey: "cdn-live-tv"},
		},
		State: StateConfig{Path: "data/events.json"},
		Output: OutputConfig{
			HTMLPath:   "public/index.html",
			M3UPath:    "public/playlist.m3u",
			TimeOffset: Duration(time.Hour),
		},
	}
}

// overrideFromEnv applies environment overrides for endpoints and secrets
// (priority env > yaml).
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("CDNLIVE_API_URL"); v != "" {
		cfg.Providers.CDNLive.URL = v
	}
	if v := os.Getenv("PPVLAND_API_URL"); v != "" {
		cfg.Providers.PPVLand.URL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		} else {
			slog.Warn("TELEGRAM_CHAT_ID is not numeric, ignoring", "value", v)
		}
	}
}
