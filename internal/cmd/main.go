package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/catalog/internal/version"
)

// logLevelEnv overrides the log level of the CLI logger. Commands that read a
// config file (e.g. server) build their own logger from log_level instead.
const logLevelEnv = "CATALOG_LOG_LEVEL"

// Main runs the catalog CLI with the given arguments and returns the exit
// code. With no subcommand it runs the API server.
func Main(args []string) int {
	cliName := filepath.Base(args[0])

	level := hclog.LevelFromString(os.Getenv(logLevelEnv))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:  cliName,
		Level: level,
	})

	switch {
	case len(args) == 1:
		args = append(args, "server")
	case len(args) == 2 && isVersionFlag(args[1]):
		args = []string{args[0], "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	initCommands(log, ui)

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version.Version,
		Commands: Commands,
		HelpFunc: helpFunc(cliName),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error("error executing CLI: " + err.Error())
		return 1
	}

	return exitCode
}

func isVersionFlag(arg string) bool {
	switch arg {
	case "-v", "-version", "--version":
		return true
	}
	return false
}

// helpFunc prefixes the standard command listing with a description of how
// entities are addressed.
func helpFunc(cliName string) cli.HelpFunc {
	basic := cli.BasicHelpFunc(cliName)
	return func(commands map[string]cli.CommandFactory) string {
		var b strings.Builder
		b.WriteString("The catalog serves products and projects addressed by UUID or slug.\n")
		b.WriteString("Running " + cliName + " without a subcommand starts the API server.\n\n")
		b.WriteString(basic(commands))
		return b.String()
	}
}
