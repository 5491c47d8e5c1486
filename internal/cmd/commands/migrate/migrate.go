package migrate

import (
	"database/sql"
	"flag"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/internal/migrate"
	"github.com/hashicorp-forge/catalog/pkg/database"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Apply database schema migrations"
}

func (c *Command) Help() string {
	return `Usage: catalog migrate [options]

  This command applies all pending schema migrations to the configured
  database and prints the resulting schema version.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("migrate", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to catalog config file. Defaults to a local SQLite database.",
	)

	return f
}

// sqlDriverName returns the database/sql driver registered for driver.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case database.DriverPostgres:
		return "postgres", nil
	case database.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log.Named("migrate"), c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	dbCfg := cfg.DatabaseConfig()

	sqlDriver, err := sqlDriverName(dbCfg.Driver)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	db, err := sql.Open(sqlDriver, dbCfg.DSN())
	if err != nil {
		ui.Error(fmt.Sprintf("error opening database: %v", err))
		return 1
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		ui.Error(fmt.Sprintf("error connecting to database: %v", err))
		return 1
	}

	logger.Info("running migrations", "driver", dbCfg.Driver)
	if err := migrate.RunMigrations(db, dbCfg.Driver); err != nil {
		ui.Error(fmt.Sprintf("error running migrations: %v", err))
		return 1
	}

	version, dirty, err := migrate.GetMigrationVersion(db, dbCfg.Driver)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading migration version: %v", err))
		return 1
	}
	if dirty {
		ui.Warn(fmt.Sprintf("schema version %d is dirty", version))
		return 1
	}
	ui.Info(fmt.Sprintf("Schema is at version %d", version))

	return 0
}
