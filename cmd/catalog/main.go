package main

import (
	"os"

	"github.com/hashicorp-forge/catalog/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
