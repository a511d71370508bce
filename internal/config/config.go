package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tasktrack/internal/database"
	"github.com/thenoetrevino/tasktrack/internal/logging"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// ServerConfig controls the HTTP listener
type ServerConfig struct {
	Addr            string        `yaml:"addr" toml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// DatabaseConfig selects the store and sizes its connection pool
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" toml:"driver"`
	DSN             string        `yaml:"dsn" toml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns" toml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime"`
	BusyTimeout     time.Duration `yaml:"busy_timeout" toml:"busy_timeout"`
}

// LogConfig controls the application logger
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file" toml:"file"` // empty means stderr
}

// Environment variables read by Load
const (
	EnvConfigFile  = "TASKTRACK_CONFIG"
	EnvAddr        = "TASKTRACK_ADDR"
	EnvDBDriver    = "TASKTRACK_DB_DRIVER"
	EnvDBDSN       = "TASKTRACK_DB_DSN"
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "TASKTRACK_LOG_LEVEL"
	EnvLogFormat   = "TASKTRACK_LOG_FORMAT"
	EnvLogFile     = "TASKTRACK_LOG_FILE"
)

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load builds the configuration from defaults, a config file and the environment,
// in increasing order of precedence.
//
// The file is path if non-empty, else $TASKTRACK_CONFIG, else the default location
// under the user's config directory. An explicitly named file must exist; a missing
// default file just means defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if envPath := os.Getenv(EnvConfigFile); envPath != "" {
			path = envPath
			explicit = true
		}
	}
	if !explicit {
		defaultPath, err := getConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	var cfg Config
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			if !explicit && errors.Is(err, os.ErrNotExist) {
				cfg = Config{}
			} else {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeFile parses a YAML or TOML config file, chosen by extension
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tasktrack", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tasktrack", "config.yaml"), nil
}

// defaultSQLitePath places the database under ~/.tasktrack like other per-user state
func defaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "tasks.db"
	}
	return filepath.Join(homeDir, ".tasktrack", "tasks.db")
}

// applyEnv overrides config from environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}

	// DATABASE_URL is the conventional variable; the tasktrack ones win over it
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Database.DSN = v
		if isPostgresURL(v) {
			c.Database.Driver = database.DriverPostgres
		}
	}
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.Server.applyDefaults()
	c.Database.applyDefaults()
	c.Log.applyDefaults()
}

func (s *ServerConfig) applyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func (d *DatabaseConfig) applyDefaults() {
	if d.Driver == "" {
		d.Driver = database.DriverSQLite
	}
	if d.DSN == "" && d.Driver == database.DriverSQLite {
		d.DSN = defaultSQLitePath()
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = 10
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 5
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 30 * time.Minute
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5 * time.Second
	}
}

func (l *LogConfig) applyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logging.FormatText
	}
}

// Validate reports configuration that cannot work
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("database.driver %q is not supported (use %q or %q)",
			c.Database.Driver, database.DriverSQLite, database.DriverPostgres)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log.format %q is not supported", c.Log.Format)
	}
	return nil
}

// DatabaseOptions converts the database section into the store's connection settings
func (c *Config) DatabaseOptions() database.Config {
	return database.Config{
		Driver:          c.Database.Driver,
		DSN:             c.Database.DSN,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		BusyTimeout:     c.Database.BusyTimeout,
	}
}

// LoggingOptions converts the log section into logger settings
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

func isPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
