package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/catalog/pkg/database"
)

// Config contains the catalog configuration.
type Config struct {
	// LogLevel is the level of logs to output ("trace", "debug", "info",
	// "warn", "error"). Defaults to "info".
	LogLevel string `hcl:"log_level,optional"`

	// LogFormat is either "standard" or "json". Defaults to "standard".
	LogFormat string `hcl:"log_format,optional"`

	// Server configures the HTTP API server.
	Server *Server `hcl:"server,block"`

	// Database configures the catalog database.
	Database *Database `hcl:"database,block"`

	// Datadog configures Datadog APM tracing.
	Datadog *Datadog `hcl:"datadog,block"`
}

// Server configures the HTTP API server.
type Server struct {
	// Addr is the address to bind to for serving the API.
	Addr string `hcl:"addr,optional"`

	// ShutdownTimeout is how long to wait for in-flight requests on shutdown
	// (e.g. "10s").
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
}

// Database configures the catalog database.
type Database struct {
	// Driver is "postgres" or "sqlite".
	Driver string `hcl:"driver,optional"`

	// PostgreSQL settings.
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`

	// Path is the SQLite database file.
	Path string `hcl:"path,optional"`

	// Connection pool settings.
	MaxIdleConns    int    `hcl:"max_idle_conns,optional"`
	MaxOpenConns    int    `hcl:"max_open_conns,optional"`
	ConnMaxLifetime string `hcl:"conn_max_lifetime,optional"`
	ConnMaxIdleTime string `hcl:"conn_max_idle_time,optional"`

	// AutoMigrate applies pending schema migrations whenever a command opens
	// the database. Defaults to true; set to false when migrations are run
	// separately with "catalog migrate" or catalog-migrate.
	AutoMigrate *bool `hcl:"auto_migrate,optional"`
}

// Datadog configures Datadog APM tracing.
type Datadog struct {
	// Enabled enables Datadog tracing of API requests.
	Enabled bool `hcl:"enabled,optional"`

	// Service is the service name reported to Datadog. Defaults to "catalog".
	Service string `hcl:"service,optional"`

	// Env is the deployment environment reported to Datadog.
	Env string `hcl:"env,optional"`
}

// Default returns the zero-config configuration: a local SQLite database
// and an API on localhost.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// NewConfig parses and validates the HCL config file at filename.
func NewConfig(fs afero.Fs, filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	// hclsimple picks the syntax from the file extension.
	if err := hclsimple.Decode(filepath.Base(filename), src, nil, cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "standard"
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8000"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}

	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.AutoMigrate == nil {
		autoMigrate := true
		c.Database.AutoMigrate = &autoMigrate
	}
	if c.Database.Driver == "" {
		c.Database.Driver = database.DriverSQLite
	}
	switch c.Database.Driver {
	case database.DriverSQLite:
		if c.Database.Path == "" {
			c.Database.Path = "catalog.db"
		}
	case database.DriverPostgres:
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}

	if c.Datadog == nil {
		c.Datadog = &Datadog{}
	}
	if c.Datadog.Service == "" {
		c.Datadog.Service = "catalog"
	}
}

// Validate returns all problems with the configuration.
func (c *Config) Validate() error {
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result,
			fmt.Errorf("log_level %q is not a valid log level", c.LogLevel))
	}
	if c.LogFormat != "standard" && c.LogFormat != "json" {
		result = multierror.Append(result,
			fmt.Errorf("log_format must be \"standard\" or \"json\", got %q", c.LogFormat))
	}

	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		result = multierror.Append(result,
			fmt.Errorf("server.shutdown_timeout: %w", err))
	}

	db := c.Database
	switch db.Driver {
	case database.DriverSQLite:
		if db.Path == "" {
			result = multierror.Append(result,
				fmt.Errorf("database.path is required for sqlite"))
		}
	case database.DriverPostgres:
		if db.Host == "" {
			result = multierror.Append(result,
				fmt.Errorf("database.host is required for postgres"))
		}
		if db.DBName == "" {
			result = multierror.Append(result,
				fmt.Errorf("database.dbname is required for postgres"))
		}
	default:
		result = multierror.Append(result,
			fmt.Errorf("database.driver must be \"postgres\" or \"sqlite\", got %q", db.Driver))
	}
	for name, d := range map[string]string{
		"database.conn_max_lifetime":  db.ConnMaxLifetime,
		"database.conn_max_idle_time": db.ConnMaxIdleTime,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
		}
	}

	return result.ErrorOrNil()
}

// DatabaseConfig converts the database block into a database.Config.
// Durations are assumed valid; see Validate.
func (c *Config) DatabaseConfig() database.Config {
	db := c.Database
	cfg := database.Config{
		Driver:       db.Driver,
		Host:         db.Host,
		Port:         db.Port,
		User:         db.User,
		Password:     db.Password,
		DBName:       db.DBName,
		SSLMode:      db.SSLMode,
		Path:         db.Path,
		MaxIdleConns: db.MaxIdleConns,
		MaxOpenConns: db.MaxOpenConns,
	}
	cfg.ConnMaxLifetime, _ = time.ParseDuration(db.ConnMaxLifetime)
	cfg.ConnMaxIdleTime, _ = time.ParseDuration(db.ConnMaxIdleTime)
	return cfg
}

// AutoMigrate reports whether schema migrations should be applied when the
// database is opened.
func (c *Config) AutoMigrate() bool {
	return c.Database.AutoMigrate == nil || *c.Database.AutoMigrate
}

// ShutdownTimeout returns the parsed server shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// NewLogger creates the root logger described by the configuration.
func (c *Config) NewLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(c.LogLevel),
		JSONFormat: c.LogFormat == "json",
	})
}
