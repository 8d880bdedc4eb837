// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/offer-tracker/pkg/logger"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Target        TargetConfig        `yaml:"target"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	State         StateConfig         `yaml:"state"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// CatalogConfig defines the product listing endpoint.
type CatalogConfig struct {
	BaseURL   string            `yaml:"base_url"`
	Params    map[string]string `yaml:"params"`
	Headers   map[string]string `yaml:"headers"`
	PageSize  int               `yaml:"page_size"`
	MaxPages  int               `yaml:"max_pages"`
	Timeout   time.Duration     `yaml:"timeout"`
	RateLimit RateLimitConfig   `yaml:"rate_limit"`
}

// RateLimitConfig spaces catalog page requests. A zero rate disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// TargetConfig defines the tracked product.
type TargetConfig struct {
	ProductID string   `yaml:"product_id"`
	Sizes     []string `yaml:"sizes"`
	URL       string   `yaml:"url"`
	Currency  string   `yaml:"currency"`
}

// ScheduleConfig defines the poll interval.
type ScheduleConfig struct {
	Interval   time.Duration `yaml:"interval"`
	RunOnStart *bool         `yaml:"run_on_start"` // default: true
}

// StateConfig defines where the notification record is kept.
type StateConfig struct {
	Driver   string         `yaml:"driver"` // file, memory, sqlite, postgres
	Path     string         `yaml:"path"`
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// NotificationsConfig defines the notification backend.
type NotificationsConfig struct {
	Backend  string         `yaml:"backend"` // telegram, discord, none; empty infers
	Telegram TelegramConfig `yaml:"telegram"`
	Discord  DiscordConfig  `yaml:"discord"`
}

// TelegramConfig defines Telegram bot settings. Token and chat id fall back
// to TELEGRAM_TOKEN and TELEGRAM_CHAT_ID.
type TelegramConfig struct {
	Token       string `yaml:"token"`
	ChatID      string `yaml:"chat_id"`
	Endpoint    string `yaml:"endpoint"`
	LinkPreview *bool  `yaml:"link_preview"` // default: true
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// LoadEnvFiles loads KEY=VALUE files into the environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// RunOnStartEnabled reports whether a tick fires as soon as the scheduler starts.
func (s *ScheduleConfig) RunOnStartEnabled() bool {
	return s.RunOnStart == nil || *s.RunOnStart
}

// LinkPreviewEnabled reports whether Telegram shows a preview of the product link.
func (t *TelegramConfig) LinkPreviewEnabled() bool {
	return t.LinkPreview == nil || *t.LinkPreview
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyCatalogDefaults(&cfg.Catalog)
	applyTargetDefaults(&cfg.Target)
	applyScheduleDefaults(&cfg.Schedule)
	applyStateDefaults(&cfg.State)
	applyTelegramDefaults(&cfg.Notifications.Telegram)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.PageSize == 0 {
		c.PageSize = 36
	}
	if c.MaxPages == 0 {
		c.MaxPages = 20
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Second
	}
	if c.RateLimit.PerSecond > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 1
	}
}

func applyTargetDefaults(t *TargetConfig) {
	t.ProductID = strings.TrimSpace(t.ProductID)
	if t.Currency == "" {
		t.Currency = "€"
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.Interval == 0 {
		s.Interval = 15 * time.Minute
	}
}

func applyStateDefaults(s *StateConfig) {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	if s.Driver == "" {
		s.Driver = "file"
	}
	if s.Path == "" {
		switch s.Driver {
		case "file":
			s.Path = "notified_offers.json"
		case "sqlite":
			s.Path = "offer-tracker.db"
		}
	}
	if s.Database.Port == 0 {
		s.Database.Port = 5432
	}
	if s.Database.SSLMode == "" {
		s.Database.SSLMode = "disable"
	}
}

func applyTelegramDefaults(t *TelegramConfig) {
	if t.Token == "" {
		t.Token = os.Getenv("TELEGRAM_TOKEN")
	}
	if t.ChatID == "" {
		t.ChatID = os.Getenv("TELEGRAM_CHAT_ID")
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Target.ProductID == "" {
		errs = append(errs, fmt.Errorf("target.product_id is required"))
	}
	if !slices.ContainsFunc(cfg.Target.Sizes, func(s string) bool { return strings.TrimSpace(s) != "" }) {
		errs = append(errs, fmt.Errorf("target.sizes must list at least one size"))
	}

	errs = append(errs, validateCatalog(&cfg.Catalog)...)

	if cfg.Schedule.Interval < time.Second {
		errs = append(errs, fmt.Errorf("schedule.interval must be at least 1s (got %s)", cfg.Schedule.Interval))
	}

	switch cfg.State.Driver {
	case "file", "memory", "sqlite":
	case "postgres":
		db := cfg.State.Database
		if db.Host == "" {
			errs = append(errs, fmt.Errorf("state.database.host is required when driver is postgres"))
		}
		if db.Name == "" {
			errs = append(errs, fmt.Errorf("state.database.name is required when driver is postgres"))
		}
		if db.User == "" {
			errs = append(errs, fmt.Errorf("state.database.user is required when driver is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"state.driver must be one of: file, memory, sqlite, postgres (got %q)",
			cfg.State.Driver,
		))
	}

	switch strings.ToLower(cfg.Notifications.Backend) {
	case "", "telegram", "discord", "none":
	default:
		errs = append(errs, fmt.Errorf(
			"notifications.backend must be one of: telegram, discord, none (got %q)",
			cfg.Notifications.Backend,
		))
	}

	if !slices.Contains(logger.Levels, strings.ToLower(cfg.Logging.Level)) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %s (got %q)",
			strings.Join(logger.Levels, ", "), cfg.Logging.Level))
	}
	if !slices.Contains(logger.Formats, strings.ToLower(cfg.Logging.Format)) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %s (got %q)",
			strings.Join(logger.Formats, ", "), cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func validateCatalog(c *CatalogConfig) []error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("catalog.base_url must be an absolute http(s) URL (got %q)", c.BaseURL))
	}
	if c.PageSize < 0 {
		errs = append(errs, fmt.Errorf("catalog.page_size must be positive"))
	}
	if c.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("catalog.max_pages must be positive"))
	}
	if c.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("catalog.rate_limit.per_second must not be negative"))
	}

	return errs
}
