// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// MinSessionSecretLength is the minimum cookie signing secret size in bytes.
const MinSessionSecretLength = 32

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Blog     BlogConfig     `yaml:"blog"`
	Auth     AuthConfig     `yaml:"auth"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// TrustedProxies lists CIDR ranges whose X-Forwarded-For is honoured.
	// Empty means clients are identified by the socket address alone.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SessionConfig defines the login session cookie.
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	Name   string        `yaml:"name"`
	MaxAge time.Duration `yaml:"max_age"`
	Secure bool          `yaml:"secure"`
}

// BlogConfig defines presentation settings.
type BlogConfig struct {
	Title    string `yaml:"title"`
	PageSize int    `yaml:"page_size"`
}

// AuthConfig defines sign-up and login policy.
type AuthConfig struct {
	MinPasswordLength  int     `yaml:"min_password_length"`
	LoginRatePerMinute float64 `yaml:"login_rate_per_minute"`
	LoginBurst         int     `yaml:"login_burst"`
}

// DraftsConfig defines how long unpublished drafts are kept.
type DraftsConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
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

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applySessionDefaults(&cfg.Session)
	applyBlogDefaults(&cfg.Blog)
	applyAuthDefaults(&cfg.Auth)
	applyDraftsDefaults(&cfg.Drafts)
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
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.Name == "" {
		s.Name = "devlog_session"
	}
	if s.MaxAge == 0 {
		s.MaxAge = 7 * 24 * time.Hour
	}
}

func applyBlogDefaults(b *BlogConfig) {
	if b.Title == "" {
		b.Title = "DevLog"
	}
	if b.PageSize == 0 {
		b.PageSize = 6
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.MinPasswordLength == 0 {
		a.MinPasswordLength = 8
	}
	if a.LoginRatePerMinute == 0 {
		a.LoginRatePerMinute = 10
	}
	if a.LoginBurst == 0 {
		a.LoginBurst = 5
	}
}

func applyDraftsDefaults(d *DraftsConfig) {
	if d.TTL == 0 {
		d.TTL = 30 * 24 * time.Hour
	}
	if d.PurgeInterval == 0 {
		d.PurgeInterval = time.Hour
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

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	for _, cidr := range cfg.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			errs = append(errs, fmt.Errorf("server.trusted_proxies: invalid CIDR %q", cidr))
		}
	}

	if len(cfg.Session.Secret) < MinSessionSecretLength {
		errs = append(errs, fmt.Errorf(
			"session.secret must be at least %d bytes", MinSessionSecretLength,
		))
	}

	if cfg.Blog.PageSize < 0 {
		errs = append(errs, fmt.Errorf("blog.page_size must be positive (got %d)", cfg.Blog.PageSize))
	}

	if cfg.Auth.LoginRatePerMinute < 0 {
		errs = append(errs, fmt.Errorf("auth.login_rate_per_minute must not be negative"))
	}

	if cfg.Drafts.PurgeInterval < time.Minute {
		errs = append(errs, fmt.Errorf("drafts.purge_interval must be at least 1m"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
