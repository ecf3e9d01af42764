package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/mcoot/unogame/internal/model"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Log formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config is the server configuration
type Config struct {
	Server   ServerSettings
	Storage  StorageSettings
	Session  SessionSettings
	Defaults model.Settings
	Logging  LoggingSettings
}

// ServerSettings controls the HTTP listener
type ServerSettings struct {
	Host string
	Port int
	// FrontendURL is the origin allowed by CORS; "*" allows any
	FrontendURL     string
	ShutdownTimeout time.Duration
}

// StorageSettings selects and configures the session backend
type StorageSettings struct {
	Type       string
	RedisURL   string
	SessionTTL time.Duration
}

// SessionSettings controls eviction of idle sessions. A zero IdleTimeout
// keeps sessions for the life of the process.
type SessionSettings struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// LoggingSettings selects the log handler
type LoggingSettings struct {
	Format string
	Level  string
}

// Default returns the configuration used when no file or environment
// overrides are present
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Port:            8080,
			FrontendURL:     "*",
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageSettings{
			Type:       StorageMemory,
			RedisURL:   "redis://localhost:6379",
			SessionTTL: 24 * time.Hour,
		},
		Session: SessionSettings{
			SweepInterval: time.Minute,
		},
		Defaults: model.DefaultSettings(),
		Logging: LoggingSettings{
			Format: LogFormatJSON,
			Level:  "info",
		},
	}
}

// Load reads the HCL file at path, if any, over the defaults and then
// applies environment overrides. A missing file is not an error.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.applyFile(path); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors the HCL layout. Every block and attribute is optional.
type fileConfig struct {
	Server   *serverBlock   `hcl:"server,block"`
	Storage  *storageBlock  `hcl:"storage,block"`
	Session  *sessionBlock  `hcl:"session,block"`
	Defaults *defaultsBlock `hcl:"defaults,block"`
	Logging  *loggingBlock  `hcl:"logging,block"`
}

type serverBlock struct {
	Host            *string `hcl:"host,optional"`
	Port            *int    `hcl:"port,optional"`
	FrontendURL     *string `hcl:"frontend_url,optional"`
	ShutdownTimeout *string `hcl:"shutdown_timeout,optional"`
}

type storageBlock struct {
	Type       *string `hcl:"type,optional"`
	RedisURL   *string `hcl:"redis_url,optional"`
	SessionTTL *string `hcl:"session_ttl,optional"`
}

type sessionBlock struct {
	IdleTimeout   *string `hcl:"idle_timeout,optional"`
	SweepInterval *string `hcl:"sweep_interval,optional"`
}

type defaultsBlock struct {
	HandSize                 *int  `hcl:"hand_size,optional"`
	AIEnabled                *bool `hcl:"ai_enabled,optional"`
	AIDelayMs                *int  `hcl:"ai_delay_ms,optional"`
	AutoPlayIfDrawnPlayable  *bool `hcl:"auto_play_if_drawn_playable,optional"`
	AllowIllegalWildDrawFour *bool `hcl:"allow_illegal_wild_draw_four,optional"`
	ScoreLimit               *int  `hcl:"score_limit,optional"`
}

type loggingBlock struct {
	Format *string `hcl:"format,optional"`
	Level  *string `hcl:"level,optional"`
}

func (c *Config) applyFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var err error
	if b := fc.Server; b != nil {
		setString(&c.Server.Host, b.Host)
		setInt(&c.Server.Port, b.Port)
		setString(&c.Server.FrontendURL, b.FrontendURL)
		err = errors.Join(err, setDuration(&c.Server.ShutdownTimeout, b.ShutdownTimeout, "server.shutdown_timeout"))
	}
	if b := fc.Storage; b != nil {
		setString(&c.Storage.Type, b.Type)
		setString(&c.Storage.RedisURL, b.RedisURL)
		err = errors.Join(err, setDuration(&c.Storage.SessionTTL, b.SessionTTL, "storage.session_ttl"))
	}
	if b := fc.Session; b != nil {
		err = errors.Join(err,
			setDuration(&c.Session.IdleTimeout, b.IdleTimeout, "session.idle_timeout"),
			setDuration(&c.Session.SweepInterval, b.SweepInterval, "session.sweep_interval"),
		)
	}
	if b := fc.Defaults; b != nil {
		// Unlike a runtime patch, out-of-range defaults fail Validate
		setInt(&c.Defaults.HandSize, b.HandSize)
		setBool(&c.Defaults.AIEnabled, b.AIEnabled)
		setInt(&c.Defaults.AIDelayMs, b.AIDelayMs)
		setBool(&c.Defaults.AutoPlayIfDrawnPlayable, b.AutoPlayIfDrawnPlayable)
		setBool(&c.Defaults.AllowIllegalWildDrawFour, b.AllowIllegalWildDrawFour)
		setInt(&c.Defaults.ScoreLimit, b.ScoreLimit)
	}
	if b := fc.Logging; b != nil {
		setString(&c.Logging.Format, b.Format)
		setString(&c.Logging.Level, b.Level)
	}
	return err
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := getenv("FRONTEND_URL"); v != "" {
		c.Server.FrontendURL = v
	}
	if v := getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Server.Port))
	}
	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("redis_url required when storage type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid storage type %q: must be %q or %q", c.Storage.Type, StorageMemory, StorageRedis))
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatConsole:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Logging.Format))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}
	if c.Session.IdleTimeout > 0 && c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("sweep_interval must be positive when idle_timeout is set"))
	}

	d := c.Defaults
	if d.HandSize < model.MinHandSize || d.HandSize > model.MaxHandSize {
		errs = append(errs, fmt.Errorf("hand_size must be between %d and %d", model.MinHandSize, model.MaxHandSize))
	}
	if d.AIDelayMs < model.MinAIDelayMs || d.AIDelayMs > model.MaxAIDelayMs {
		errs = append(errs, fmt.Errorf("ai_delay_ms must be between %d and %d", model.MinAIDelayMs, model.MaxAIDelayMs))
	}
	if d.ScoreLimit < model.MinScoreLimit || d.ScoreLimit > model.MaxScoreLimit {
		errs = append(errs, fmt.Errorf("score_limit must be between %d and %d", model.MinScoreLimit, model.MaxScoreLimit))
	}
	return errors.Join(errs...)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = d
	return nil
}
