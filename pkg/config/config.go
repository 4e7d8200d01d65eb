package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Panel server configuration"`
	Storage   StorageConfig   `yaml:"storage" json:"storage" jsonschema:"description=Rule storage configuration"`
	Timing    TimingConfig    `yaml:"timing" json:"timing" jsonschema:"description=Debounce, dwell and dismissal timings"`
	Selectors SelectorsConfig `yaml:"selectors" json:"selectors" jsonschema:"description=Host page structural selectors"`
}

// ServerConfig holds panel server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=127.0.0.1:8080,description=Panel server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Panel server timeout"`
}

// StorageConfig holds key-value storage settings
type StorageConfig struct {
	DSN         string `yaml:"dsn" json:"dsn" jsonschema:"default=file:cardfilter.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	KeywordsKey string `yaml:"keywords_key" json:"keywords_key" jsonschema:"default=filtered_keywords,description=Storage entry holding keyword rules"`
	AuthorsKey  string `yaml:"authors_key" json:"authors_key" jsonschema:"default=blocked_users,description=Storage entry holding blocked authors"`
}

// TimingConfig holds all timer durations used by the scheduler and the hover advisor
type TimingConfig struct {
	InitialDelay time.Duration `yaml:"initial_delay" json:"initial_delay" jsonschema:"default=1s,description=Delay before the first unconditional filter pass"`
	Debounce     time.Duration `yaml:"debounce" json:"debounce" jsonschema:"default=300ms,description=Quiet period after a structural mutation before re-filtering"`
	Dwell        time.Duration `yaml:"dwell" json:"dwell" jsonschema:"default=400ms,description=Hover time before the block tooltip is offered"`
	Grace        time.Duration `yaml:"grace" json:"grace" jsonschema:"default=300ms,description=Grace period before tooltip teardown after pointer leaves"`
	AutoDismiss  time.Duration `yaml:"auto_dismiss" json:"auto_dismiss" jsonschema:"default=10s,description=Tooltip lifetime without hover"`
	Notice       time.Duration `yaml:"notice" json:"notice" jsonschema:"default=3s,description=Success notification lifetime"`
}

// SelectorsConfig describes the host page structure
type SelectorsConfig struct {
	Card           string   `yaml:"card" json:"card" jsonschema:"default=.bili-video-card,description=Content card selector"`
	Title          string   `yaml:"title" json:"title" jsonschema:"default=.bili-video-card__info--tit a,description=Title link selector inside a card"`
	Owner          string   `yaml:"owner" json:"owner" jsonschema:"default=.bili-video-card__info--owner,description=Owner region selector inside a card"`
	Author         string   `yaml:"author" json:"author" jsonschema:"default=.bili-video-card__info--author,description=Author name selector inside a card"`
	Container      string   `yaml:"container" json:"container" jsonschema:"default=body,description=Element new cards are appended to"`
	TooltipClass   string   `yaml:"tooltip_class" json:"tooltip_class" jsonschema:"default=cardfilter-tooltip,description=Class of the block tooltip element"`
	NoticeClass    string   `yaml:"notice_class" json:"notice_class" jsonschema:"default=cardfilter-notice,description=Class of the success notification element"`
	ProfilePattern string   `yaml:"profile_pattern" json:"profile_pattern" jsonschema:"description=Regular expression with one capture group for the author id in a profile link"`
	ProfileHost    string   `yaml:"profile_host" json:"profile_host" jsonschema:"default=space.bilibili.com,description=Host part of profile links"`
	Noise          []string `yaml:"noise" json:"noise" jsonschema:"description=Selectors of cards hidden on every pass regardless of rules"`
}

// Default returns configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = "127.0.0.1:8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// storage
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "file:cardfilter.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Storage.KeywordsKey == "" {
		cfg.Storage.KeywordsKey = "filtered_keywords"
	}
	if cfg.Storage.AuthorsKey == "" {
		cfg.Storage.AuthorsKey = "blocked_users"
	}

	// timing
	if cfg.Timing.InitialDelay == 0 {
		cfg.Timing.InitialDelay = time.Second
	}
	if cfg.Timing.Debounce == 0 {
		cfg.Timing.Debounce = 300 * time.Millisecond
	}
	if cfg.Timing.Dwell == 0 {
		cfg.Timing.Dwell = 400 * time.Millisecond
	}
	if cfg.Timing.Grace == 0 {
		cfg.Timing.Grace = 300 * time.Millisecond
	}
	if cfg.Timing.AutoDismiss == 0 {
		cfg.Timing.AutoDismiss = 10 * time.Second
	}
	if cfg.Timing.Notice == 0 {
		cfg.Timing.Notice = 3 * time.Second
	}

	// selectors
	s := &cfg.Selectors
	if s.Card == "" {
		s.Card = ".bili-video-card"
	}
	if s.Title == "" {
		s.Title = ".bili-video-card__info--tit a"
	}
	if s.Owner == "" {
		s.Owner = ".bili-video-card__info--owner"
	}
	if s.Author == "" {
		s.Author = ".bili-video-card__info--author"
	}
	if s.Container == "" {
		s.Container = "body"
	}
	if s.TooltipClass == "" {
		s.TooltipClass = "cardfilter-tooltip"
	}
	if s.NoticeClass == "" {
		s.NoticeClass = "cardfilter-notice"
	}
	if s.ProfilePattern == "" {
		s.ProfilePattern = `space\.bilibili\.com/(\d+)`
	}
	if s.ProfileHost == "" {
		s.ProfileHost = "space.bilibili.com"
	}
	if len(s.Noise) == 0 {
		s.Noise = []string{
			"div.floor-single-card",
			"div.bili-live-card",
			"div.bili-video-card.is-rcmd:not(.enable-no-interest)",
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	durations := map[string]time.Duration{
		"timing.initial_delay": cfg.Timing.InitialDelay,
		"timing.debounce":      cfg.Timing.Debounce,
		"timing.dwell":         cfg.Timing.Dwell,
		"timing.grace":         cfg.Timing.Grace,
		"timing.auto_dismiss":  cfg.Timing.AutoDismiss,
		"timing.notice":        cfg.Timing.Notice,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	re, err := regexp.Compile(cfg.Selectors.ProfilePattern)
	if err != nil {
		return fmt.Errorf("selectors.profile_pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("selectors.profile_pattern must contain a capture group")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
