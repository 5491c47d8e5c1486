package version

// Version is the catalog version. It is overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/catalog/internal/version.Version=...".
var Version = "0.1.0-dev"
