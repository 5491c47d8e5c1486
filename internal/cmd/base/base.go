package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/catalog/internal/config"
	"github.com/hashicorp-forge/catalog/internal/migrate"
	"github.com/hashicorp-forge/catalog/pkg/database"
)

// Command contains the dependencies shared by all commands.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is the filesystem config files are read from.
	Fs afero.Fs
}

// NewCommand returns a Command reading config from the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// LoadConfig parses the config file at path, or returns the zero-config
// defaults if path is empty.
func (c *Command) LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.NewConfig(c.Fs, path)
}

// OpenDatabase connects to the configured database, applying migrations
// first if auto_migrate is enabled.
func (c *Command) OpenDatabase(cfg *config.Config, log hclog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DatabaseConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if cfg.AutoMigrate() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error getting underlying SQL DB: %w", err)
		}
		if err := migrate.RunMigrations(sqlDB, cfg.Database.Driver); err != nil {
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		log.Debug("database migrations applied", "driver", cfg.Database.Driver)
	}

	return db, nil
}

// FlagSet wraps flag.FlagSet to render help text for mitchellh/cli.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns the formatted flag usage.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	buf.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&buf, "\n  -%s", fl.Name)
		if fl.DefValue != "" {
			fmt.Fprintf(&buf, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&buf, "\n      %s\n", strings.ReplaceAll(fl.Usage, "\n", "\n      "))
	})
	return strings.TrimRight(buf.String(), "\n")
}

// Entity kinds accepted by the -kind flag.
const (
	KindProduct = "product"
	KindProject = "project"
)
