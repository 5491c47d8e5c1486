package seed

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/pkg/entityref"
	"github.com/hashicorp-forge/catalog/pkg/models"
	"github.com/hashicorp-forge/catalog/pkg/store"
)

type Command struct {
	*base.Command

	flagConfig      string
	flagKind        string
	flagName        string
	flagSlug        string
	flagUUID        string
	flagDescription string
}

func (c *Command) Synopsis() string {
	return "Create a product or project"
}

func (c *Command) Help() string {
	return `Usage: catalog seed [options]

  This command creates a single product or project. The UUID is generated and
  the slug is derived from the name unless they are provided.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("seed", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to catalog config file. Defaults to a local SQLite database.",
	)
	f.StringVar(
		&c.flagKind, "kind", base.KindProduct,
		`Kind of entity to create ("product" or "project").`,
	)
	f.StringVar(
		&c.flagName, "name", "",
		"(Required) Product name or project title.",
	)
	f.StringVar(
		&c.flagSlug, "slug", "",
		"Slug to use instead of one derived from the name.",
	)
	f.StringVar(
		&c.flagUUID, "uuid", "",
		"UUID to use instead of a generated one.",
	)
	f.StringVar(
		&c.flagDescription, "description", "",
		"Optional description.",
	)

	return f
}

func (c *Command) validateFlags() error {
	return validation.Errors{
		"kind": validation.Validate(c.flagKind,
			validation.Required,
			validation.In(base.KindProduct, base.KindProject)),
		"name": validation.Validate(c.flagName, validation.Required),
		"uuid": validation.Validate(c.flagUUID, validation.By(canonicalUUID)),
	}.Filter()
}

// canonicalUUID accepts an empty value or a UUID in canonical form, in any
// letter case.
func canonicalUUID(value interface{}) error {
	s, _ := value.(string)
	if s == "" || entityref.IsCanonicalUUID(s) {
		return nil
	}
	return errors.New("must be a valid UUID")
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if err := c.validateFlags(); err != nil {
		ui.Error(fmt.Sprintf("invalid flags: %v", err))
		return 1
	}

	var id uuid.UUID
	if c.flagUUID != "" {
		// Already validated; parsing normalises the case.
		id = uuid.MustParse(c.flagUUID)
	}
	var description *string
	if c.flagDescription != "" {
		description = &c.flagDescription
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	logger := c.Log.Named("seed")

	db, err := c.OpenDatabase(cfg, logger)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx := context.Background()
	var created any
	switch c.flagKind {
	case base.KindProduct:
		p := &models.Product{
			UUID:        id,
			Slug:        c.flagSlug,
			Name:        c.flagName,
			Description: description,
		}
		err = store.NewProductStore(db).Create(ctx, p)
		created = p
	case base.KindProject:
		p := &models.Project{
			UUID:        id,
			Slug:        c.flagSlug,
			Title:       c.flagName,
			Description: description,
		}
		err = store.NewProjectStore(db).Create(ctx, p)
		created = p
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error creating %s: %v", c.flagKind, err))
		return 1
	}
	logger.Info("created entity", "kind", c.flagKind, "name", c.flagName)

	out, err := json.MarshalIndent(created, "", "  ")
	if err != nil {
		ui.Error(fmt.Sprintf("error encoding %s: %v", c.flagKind, err))
		return 1
	}
	ui.Output(string(out))

	return 0
}
