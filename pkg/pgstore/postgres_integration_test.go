//go:build integration
// +build integration

package pgstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/catalog/internal/migrate"
	"github.com/hashicorp-forge/catalog/pkg/database"
	"github.com/hashicorp-forge/catalog/pkg/models"
	"github.com/hashicorp-forge/catalog/pkg/pgstore"
	"github.com/hashicorp-forge/catalog/pkg/resolve"
	"github.com/hashicorp-forge/catalog/pkg/store"
)

type testDatabase struct {
	db  *gorm.DB
	uri string
}

// startPostgres runs a migrated PostgreSQL container for the duration of t.
func startPostgres(t *testing.T) testDatabase {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ctr.Terminate(ctx)
	})

	uri, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.Connect(database.Config{
		Driver:   database.DriverPostgres,
		Host:     host,
		Port:     port.Int(),
		User:     "postgres",
		Password: "postgres",
		DBName:   "catalog",
		SSLMode:  "disable",
	}, hclog.NewNullLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrate.RunMigrations(sqlDB, migrate.DriverPostgres))

	return testDatabase{db: db, uri: uri}
}

func TestPostgresResolution(t *testing.T) {
	tdb := startPostgres(t)
	ctx := context.Background()

	desc := "Infrastructure as code"
	product := &models.Product{
		UUID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:        "Terraform Enterprise",
		Description: &desc,
		Attributes:  models.Attributes{"tier": "enterprise"},
	}
	require.NoError(t, store.NewProductStore(tdb.db).Create(ctx, product))

	project := &models.Project{Title: "Cloud Migration", ProductID: &product.ID}
	require.NoError(t, store.NewProjectStore(tdb.db).Create(ctx, project))

	pool, err := pgstore.Connect(ctx, pgstore.ConnectionConfig{URI: tdb.uri}, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	resolvers := map[string]*resolve.Resolver[models.Product, resolve.Repository[models.Product]]{
		"pgx":  resolve.New[models.Product, resolve.Repository[models.Product]](pgstore.NewProductReader(pool)),
		"gorm": resolve.New[models.Product, resolve.Repository[models.Product]](store.NewProductStore(tdb.db)),
	}
	for name, products := range resolvers {
		t.Run(name, func(t *testing.T) {
			for _, ref := range []string{
				"550e8400-e29b-41d4-a716-446655440000",
				"550E8400-E29B-41D4-A716-446655440000",
				"terraform-enterprise",
			} {
				got, err := products.Resolve(ctx, ref, "Product")
				require.NoError(t, err, ref)
				assert.Equal(t, product.UUID, got.UUID)
				assert.Equal(t, "Terraform Enterprise", got.Name)
				require.NotNil(t, got.Description)
				assert.Equal(t, desc, *got.Description)
				assert.Equal(t, "enterprise", got.Attributes.Get("tier"))
			}

			for _, ref := range []string{
				"00000000-0000-4000-8000-000000000000",
				"no-such-product",
			} {
				_, err := products.Resolve(ctx, ref, "Product")
				var nf *resolve.ResourceNotFoundError
				require.ErrorAs(t, err, &nf, ref)
				assert.Equal(t, "Product not found", nf.Error())
			}
		})
	}

	projects := resolve.New[models.Project](pgstore.NewProjectReader(pool))
	got, err := projects.Resolve(ctx, "cloud-migration", "Project")
	require.NoError(t, err)
	assert.Equal(t, project.UUID, got.UUID)
	assert.Equal(t, models.ProjectStatusActive, got.Status)
	require.NotNil(t, got.ProductID)
	assert.Equal(t, product.ID, *got.ProductID)

	got, err = projects.Resolve(ctx, project.UUID.String(), "Project")
	require.NoError(t, err)
	assert.Equal(t, "Cloud Migration", got.Title)
}

func TestPostgresSoftDeletedIsNotFound(t *testing.T) {
	tdb := startPostgres(t)
	ctx := context.Background()

	product := &models.Product{Name: "Vault"}
	require.NoError(t, store.NewProductStore(tdb.db).Create(ctx, product))
	require.NoError(t, tdb.db.Delete(product).Error)

	pool, err := pgstore.Connect(ctx, pgstore.ConnectionConfig{URI: tdb.uri}, hclog.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for name, repo := range map[string]resolve.Repository[models.Product]{
		"pgx":  pgstore.NewProductReader(pool),
		"gorm": store.NewProductStore(tdb.db),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := resolve.New[models.Product](repo).Resolve(ctx, "vault", "Product")
			assert.ErrorIs(t, err, resolve.ErrResourceNotFound)
		})
	}
}
