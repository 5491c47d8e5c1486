package testsupport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hashicorp-forge/catalog/pkg/models"
)

// NewDB returns an in-memory SQLite database with the catalog schema applied.
//
// The pool is limited to a single connection because every new connection to
// ":memory:" opens a separate, empty database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.ModelsToAutoMigrate()...))
	return db
}

// CreateProduct inserts a product with the given name and returns it.
func CreateProduct(t testing.TB, db *gorm.DB, name string) *models.Product {
	t.Helper()

	p := &models.Product{Name: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateProject inserts a project with the given title and returns it.
func CreateProject(t testing.TB, db *gorm.DB, title string) *models.Project {
	t.Helper()

	p := &models.Project{Title: title}
	require.NoError(t, db.Create(p).Error)
	return p
}
