package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/pkg/models"
	"github.com/hashicorp-forge/catalog/pkg/resolve"
	"github.com/hashicorp-forge/catalog/pkg/store"
)

type Command struct {
	*base.Command

	flagConfig string
	flagKind   string
}

func (c *Command) Synopsis() string {
	return "Resolve a product or project by UUID or slug"
}

func (c *Command) Help() string {
	return `Usage: catalog resolve [options] <uuid-or-slug>

  This command looks up a single product or project by its UUID or slug and
  prints it as JSON. Identifiers in canonical UUID form are looked up by ID,
  anything else by slug.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("resolve", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to catalog config file. Defaults to a local SQLite database.",
	)
	f.StringVar(
		&c.flagKind, "kind", base.KindProduct,
		`Kind of entity to resolve ("product" or "project").`,
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = flags.Args()
	if len(args) != 1 {
		ui.Error("expected exactly one UUID or slug argument")
		return 1
	}
	ref := args[0]

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	logger := c.Log.Named("resolve")

	db, err := c.OpenDatabase(cfg, logger)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()
	var (
		entity any
		source string
	)
	switch c.flagKind {
	case base.KindProduct:
		source = "Product"
		entity, err = resolve.New[models.Product](
			store.NewProductStore(db), resolve.WithLogger(logger),
		).Resolve(ctx, ref, source)
	case base.KindProject:
		source = "Project"
		entity, err = resolve.New[models.Project](
			store.NewProjectStore(db), resolve.WithLogger(logger),
		).Resolve(ctx, ref, source)
	default:
		ui.Error(fmt.Sprintf("invalid kind %q: must be %q or %q",
			c.flagKind, base.KindProduct, base.KindProject))
		return 1
	}
	if err != nil {
		if errors.Is(err, resolve.ErrResourceNotFound) {
			ui.Error(err.Error())
		} else {
			ui.Error(fmt.Sprintf("error resolving %s: %v", source, err))
		}
		return 1
	}

	out, err := json.MarshalIndent(entity, "", "  ")
	if err != nil {
		ui.Error(fmt.Sprintf("error encoding %s: %v", source, err))
		return 1
	}
	ui.Output(string(out))

	return 0
}
