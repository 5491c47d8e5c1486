package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/migrate"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/resolve"
	"github.com/hashicorp-forge/catalog/internal/cmd/commands/seed"
	versioncmd "github.com/hashicorp-forge/catalog/internal/cmd/commands/version"
	"github.com/hashicorp-forge/catalog/internal/version"
)

const configPath = "/etc/catalog/catalog.hcl"

// newTestBase returns a base command whose config file points at a fresh
// SQLite database in a temp dir.
func newTestBase(t *testing.T) (*base.Command, *cli.MockUi) {
	t.Helper()

	fs := afero.NewMemMapFs()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(fmt.Sprintf(`
database {
  driver       = "sqlite"
  path         = %q
  auto_migrate = true
}
`, dbPath)), 0o644))

	ui := cli.NewMockUi()
	return &base.Command{
		Log: hclog.NewNullLogger(),
		UI:  ui,
		Fs:  fs,
	}, ui
}

func resetUI(ui *cli.MockUi) {
	ui.OutputWriter.Reset()
	ui.ErrorWriter.Reset()
}

func TestSeedAndResolve(t *testing.T) {
	b, ui := newTestBase(t)
	const id = "6f1e0a4c-2b7d-4c1e-9a3f-5d8b7c6e4f21"

	code := (&seed.Command{Command: b}).Run([]string{
		"-config", configPath,
		"-name", "Terraform Enterprise",
		"-uuid", id,
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &created))
	assert.Equal(t, id, created["id"])
	assert.Equal(t, "terraform-enterprise", created["slug"])

	tests := []struct {
		name string
		ref  string
	}{
		{name: "by UUID", ref: id},
		{name: "by uppercase UUID", ref: "6F1E0A4C-2B7D-4C1E-9A3F-5D8B7C6E4F21"},
		{name: "by slug", ref: "terraform-enterprise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetUI(ui)
			code := (&resolve.Command{Command: b}).Run([]string{
				"-config", configPath, tt.ref,
			})
			require.Equal(t, 0, code, ui.ErrorWriter.String())

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &got))
			assert.Equal(t, id, got["id"])
			assert.Equal(t, "Terraform Enterprise", got["name"])
		})
	}
}

func TestSeedAndResolveProject(t *testing.T) {
	b, ui := newTestBase(t)

	code := (&seed.Command{Command: b}).Run([]string{
		"-config", configPath,
		"-kind", "project",
		"-name", "Cloud Migration",
		"-description", "Move everything",
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	resetUI(ui)
	code = (&resolve.Command{Command: b}).Run([]string{
		"-config", configPath, "-kind", "project", "cloud-migration",
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &got))
	assert.Equal(t, "Cloud Migration", got["title"])
	assert.Equal(t, "Move everything", got["description"])
	assert.Equal(t, "active", got["status"])
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown product slug",
			args:    []string{"no-such-product"},
			wantErr: "Product not found",
		},
		{
			name:    "unknown project UUID",
			args:    []string{"-kind", "project", "3fa85f64-5717-4562-b3fc-2c963f66afa6"},
			wantErr: "Project not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ui := newTestBase(t)

			args := append([]string{"-config", configPath}, tt.args...)
			code := (&resolve.Command{Command: b}).Run(args)
			assert.Equal(t, 1, code)
			assert.Equal(t, tt.wantErr+"\n", ui.ErrorWriter.String())
			assert.Empty(t, ui.OutputWriter.String())
		})
	}
}

func TestResolveInvalidUsage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no identifier",
			args:    []string{"-config", configPath},
			wantErr: "expected exactly one UUID or slug argument",
		},
		{
			name:    "too many identifiers",
			args:    []string{"-config", configPath, "a", "b"},
			wantErr: "expected exactly one UUID or slug argument",
		},
		{
			name:    "invalid kind",
			args:    []string{"-config", configPath, "-kind", "document", "a"},
			wantErr: `invalid kind "document"`,
		},
		{
			name:    "missing config file",
			args:    []string{"-config", "/nope.hcl", "a"},
			wantErr: "error parsing config file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ui := newTestBase(t)

			code := (&resolve.Command{Command: b}).Run(tt.args)
			assert.Equal(t, 1, code)
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)
		})
	}
}

func TestSeedInvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing name",
			args:    []string{},
			wantErr: "name: cannot be blank",
		},
		{
			name:    "invalid uuid",
			args:    []string{"-name", "Vault", "-uuid", "not-a-uuid"},
			wantErr: "uuid: must be a valid UUID",
		},
		{
			name:    "invalid kind",
			args:    []string{"-name", "Vault", "-kind", "document"},
			wantErr: "kind: must be a valid value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ui := newTestBase(t)

			args := append([]string{"-config", configPath}, tt.args...)
			code := (&seed.Command{Command: b}).Run(args)
			assert.Equal(t, 1, code)
			assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)
		})
	}
}

func TestSeedRejectsUUIDShapedSlug(t *testing.T) {
	b, ui := newTestBase(t)

	code := (&seed.Command{Command: b}).Run([]string{
		"-config", configPath,
		"-name", "Vault",
		"-slug", "3fa85f64-5717-4562-b3fc-2c963f66afa6",
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "must not be a UUID")
}

func TestSeedDuplicateSlug(t *testing.T) {
	b, ui := newTestBase(t)
	args := []string{"-config", configPath, "-name", "Vault"}

	require.Equal(t, 0, (&seed.Command{Command: b}).Run(args))
	resetUI(ui)
	assert.Equal(t, 1, (&seed.Command{Command: b}).Run(args))
	assert.Contains(t, ui.ErrorWriter.String(), "error creating product")
}

func TestMigrate(t *testing.T) {
	b, ui := newTestBase(t)

	code := (&migrate.Command{Command: b}).Run([]string{"-config", configPath})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Schema is at version 2")

	// Running again is a no-op.
	resetUI(ui)
	code = (&migrate.Command{Command: b}).Run([]string{"-config", configPath})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Schema is at version 2")
}

func TestVersion(t *testing.T) {
	b, ui := newTestBase(t)

	code := (&versioncmd.Command{Command: b}).Run(nil)
	assert.Equal(t, 0, code)
	assert.Equal(t, version.Version+"\n", ui.OutputWriter.String())
}

func TestCommandsRegistered(t *testing.T) {
	initCommands(hclog.NewNullLogger(), cli.NewMockUi())

	for _, name := range []string{"migrate", "resolve", "seed", "server", "version"} {
		t.Run(name, func(t *testing.T) {
			factory, ok := Commands[name]
			require.True(t, ok)
			c, err := factory()
			require.NoError(t, err)
			assert.NotEmpty(t, c.Synopsis())
			assert.NotEmpty(t, c.Help())
		})
	}
}

func TestFlagSetHelp(t *testing.T) {
	b, _ := newTestBase(t)

	help := (&resolve.Command{Command: b}).Help()
	assert.Contains(t, help, "Usage: catalog resolve")
	assert.Contains(t, help, "-config")
	assert.Contains(t, help, "-kind=product")
}

func TestSeedUUIDCase(t *testing.T) {
	tests := []struct {
		name    string
		uuid    string
		wantErr string
	}{
		{name: "uppercase", uuid: "550E8400-E29B-41D4-A716-446655440000"},
		{name: "mixed case", uuid: "550e8400-E29B-41d4-A716-446655440000"},
		{name: "braced", uuid: "{550e8400-e29b-41d4-a716-446655440000}", wantErr: "uuid: must be a valid UUID"},
		{name: "unhyphenated", uuid: "550e8400e29b41d4a716446655440000", wantErr: "uuid: must be a valid UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ui := newTestBase(t)

			code := (&seed.Command{Command: b}).Run([]string{
				"-config", configPath, "-name", "Upper", "-uuid", tt.uuid,
			})
			if tt.wantErr != "" {
				assert.Equal(t, 1, code)
				assert.Contains(t, ui.ErrorWriter.String(), tt.wantErr)
				return
			}
			require.Equal(t, 0, code, ui.ErrorWriter.String())

			var created map[string]any
			require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &created))
			assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", created["id"])

			resetUI(ui)
			code = (&resolve.Command{Command: b}).Run([]string{"-config", configPath, tt.uuid})
			require.Equal(t, 0, code, ui.ErrorWriter.String())
			assert.Contains(t, ui.OutputWriter.String(), `"slug": "upper"`)
		})
	}
}

func TestDatabaseBlockMigratesByDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(fmt.Sprintf(`
database {
  driver = "sqlite"
  path   = %q
}
`, filepath.Join(t.TempDir(), "catalog.db"))), 0o644))

	ui := cli.NewMockUi()
	b := &base.Command{Log: hclog.NewNullLogger(), UI: ui, Fs: fs}

	code := (&resolve.Command{Command: b}).Run([]string{"-config", configPath, "vault"})
	assert.Equal(t, 1, code)
	assert.Equal(t, "Product not found\n", ui.ErrorWriter.String())
}

func TestHelpFunc(t *testing.T) {
	initCommands(hclog.NewNullLogger(), cli.NewMockUi())

	help := helpFunc("catalog")(Commands)
	assert.Contains(t, help, "products and projects addressed by UUID or slug")
	assert.Contains(t, help, "Usage: catalog")
	for name := range Commands {
		assert.Contains(t, help, name)
	}
}

func TestIsVersionFlag(t *testing.T) {
	for _, arg := range []string{"-v", "-version", "--version"} {
		assert.True(t, isVersionFlag(arg), arg)
	}
	assert.False(t, isVersionFlag("version"))
	assert.False(t, isVersionFlag("-config"))
}
