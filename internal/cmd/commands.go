package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/migrate"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/resolve"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/seed"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/server"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/version"
)

// Commands is the mapping of all available catalog commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"migrate": func() (cli.Command, error) {
			return &migrate.Command{Command: b}, nil
		},
		"resolve": func() (cli.Command, error) {
			return &resolve.Command{Command: b}, nil
		},
		"seed": func() (cli.Command, error) {
			return &seed.Command{Command: b}, nil
		},
		"server": func() (cli.Command, error) {
			return &server.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
