package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/law-makers/activities/internal/utils/headers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Database holds the PostgreSQL connection settings
type Database struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the settings as a postgres:// connection URL understood by pgx
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Redacted is DSN with the password masked, safe for logs
func (d Database) Redacted() string {
	if d.Password == "" {
		return d.DSN()
	}
	masked := d
	masked.Password = "xxxxx"
	return masked.DSN()
}

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Scraping
	URL         string
	UserAgent   string
	HTTPTimeout time.Duration
	Headers     map[string]string

	// Persistence
	Database Database
}

// Load builds a Config by combining defaults, an optional .env file, environment variables, CLI flags
// and, when no password was configured, the OS keyring.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JSONLog:     DefaultJSONLog,
		URL:         DefaultURL,
		UserAgent:   DefaultUserAgent,
		HTTPTimeout: DefaultHTTPTimeout,
		Headers:     map[string]string{},
		Database: Database{
			Host:    DefaultDBHost,
			Port:    DefaultDBPort,
			Name:    DefaultDBName,
			User:    DefaultDBUser,
			SSLMode: DefaultDBSSLMode,
		},
	}

	envFile := DefaultEnvFile
	if cmd != nil {
		if f := cmd.Flags().Lookup("env-file"); f != nil && f.Value.String() != "" {
			envFile = f.Value.String()
		}
	}
	// Variables already present in the environment win over the file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cmd != nil {
		if err := applyFlags(cfg, cmd); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}

	if cfg.Database.Password == "" {
		password, err := LookupPassword(cfg.Database.User)
		if err != nil {
			log.Debug().Err(err).Msg("Keyring lookup failed, continuing without stored password")
		}
		cfg.Database.Password = password
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvDBHost); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv(EnvDBPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvDBPort, v)
		}
		cfg.Database.Port = port
	}
	if v := os.Getenv(EnvDBName); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv(EnvDBUser); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv(EnvDBSSLMode); v != "" {
		cfg.Database.SSLMode = v
	}
	return nil
}

func applyFlags(cfg *Config, cmd *cobra.Command) error {
	flags := cmd.Flags()

	if f := flags.Lookup("user-agent"); f != nil {
		if s := f.Value.String(); s != "" {
			cfg.UserAgent = s
		}
	}
	if f := flags.Lookup("url"); f != nil {
		if s := f.Value.String(); s != "" {
			cfg.URL = s
		}
	}
	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		d, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if f := flags.Lookup("header"); f != nil && f.Changed {
		raw, err := flags.GetStringArray("header")
		if err != nil {
			return err
		}
		parsed, err := headers.Parse(raw)
		if err != nil {
			return err
		}
		cfg.Headers = parsed
	}
	if f := flags.Lookup("json"); f != nil {
		if f.Value.String() == "true" {
			cfg.JSONLog = true
		}
	}
	if f := flags.Lookup("quiet"); f != nil {
		if f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}
	if f := flags.Lookup("verbose"); f != nil {
		if f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
	}
	return nil
}
