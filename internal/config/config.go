// Package config loads tend's settings from a YAML file and TEND_* env vars.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevSecret signs sessions when auth.secret is unset. Never use it in production.
const DevSecret = "tend-dev-secret-change-me"

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the backing store.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	Secret       string        `mapstructure:"secret" yaml:"secret"`
	SessionTTL   time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	CookieName   string        `mapstructure:"cookie_name" yaml:"cookie_name"`
	SecureCookie bool          `mapstructure:"secure_cookie" yaml:"secure_cookie"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ClockConfig decides where "today" starts.
type ClockConfig struct {
	Timezone string `mapstructure:"timezone" yaml:"timezone"`
}

// CLIConfig holds defaults for the local commands.
type CLIConfig struct {
	UserID uint `mapstructure:"user_id" yaml:"user_id"`
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Clock    ClockConfig    `mapstructure:"clock" yaml:"clock"`
	CLI      CLIConfig      `mapstructure:"cli" yaml:"cli"`
}

// DefaultPath returns ~/.config/tend/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tend", "config.yaml")
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tend", "tend.db")
	}
	return filepath.Join(home, ".tend", "tend.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", defaultDSN())
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.session_ttl", "720h")
	v.SetDefault("auth.cookie_name", "tend_session")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("clock.timezone", "Local")
	v.SetDefault("cli.user_id", 1)
}

// Load reads configuration from the YAML file at path, overlaid with
// TEND_* environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tend")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Database.DSN = expandHome(cfg.Database.DSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves clock.timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Clock.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("clock.timezone: %w", err)
	}
	return loc, nil
}

// SigningSecret returns auth.secret, or DevSecret when it is unset.
func (c *Config) SigningSecret() (secret []byte, isDev bool) {
	if c.Auth.Secret == "" {
		return []byte(DevSecret), true
	}
	return []byte(c.Auth.Secret), false
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
