package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid marks a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// SMTP holds contact-form mail settings.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Configured reports whether credentials are present.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

// Config is the process configuration, read from the environment.
type Config struct {
	Port           string
	ContentDir     string
	ContentBaseURL string
	FetchTimeout   time.Duration
	PageSize       int
	DBPath         string
	SiteFile       string
	LogLevel       string
	AdminUsername  string
	AdminPassword  string
	SMTP           SMTP
}

// DefaultConfig returns the development defaults
func DefaultConfig() *Config {
	return &Config{
		Port:          "8080",
		ContentDir:    "content",
		FetchTimeout:  5 * time.Second,
		PageSize:      3,
		DBPath:        "portfolio.db",
		SiteFile:      "site.yaml",
		LogLevel:      "info",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		SMTP: SMTP{
			Host: "smtp.gmail.com",
			Port: "587",
		},
	}
}

// Load reads the environment over DefaultConfig and validates the result.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	str("PORT", &cfg.Port)
	str("CONTENT_DIR", &cfg.ContentDir)
	str("CONTENT_BASE_URL", &cfg.ContentBaseURL)
	str("DB_PATH", &cfg.DBPath)
	str("SITE_FILE", &cfg.SiteFile)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("ADMIN_USERNAME", &cfg.AdminUsername)
	str("ADMIN_PASSWORD", &cfg.AdminPassword)
	str("SMTP_HOST", &cfg.SMTP.Host)
	str("SMTP_PORT", &cfg.SMTP.Port)
	str("SMTP_USER", &cfg.SMTP.User)
	str("SMTP_PASS", &cfg.SMTP.Pass)
	str("TO_EMAIL", &cfg.SMTP.To)

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: FETCH_TIMEOUT %q: %v", ErrInvalid, v, err)
		}
		cfg.FetchTimeout = d
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: PAGE_SIZE %q: %v", ErrInvalid, v, err)
		}
		cfg.PageSize = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port cannot be empty", ErrInvalid)
	}
	if c.ContentDir == "" && c.ContentBaseURL == "" {
		return fmt.Errorf("%w: either CONTENT_DIR or CONTENT_BASE_URL must be set", ErrInvalid)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch timeout must be positive", ErrInvalid)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalid)
	}
	return nil
}

// UsingDefaultAdmin reports whether the development admin credentials are
// still in place.
func (c *Config) UsingDefaultAdmin() bool {
	d := DefaultConfig()
	return c.AdminUsername == d.AdminUsername || c.AdminPassword == d.AdminPassword
}
