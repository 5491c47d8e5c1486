// Package store provides GORM-backed repositories for catalog entities.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/catalog/pkg/entityref"
	"github.com/hashicorp-forge/catalog/pkg/models"
	"github.com/hashicorp-forge/catalog/pkg/resolve"
)

// Store is a repository for entities of model type M.
//
// M must be a GORM model with "uuid" and "slug" columns. Lookups that match
// no row return (nil, nil), as required by resolve.Repository.
type Store[M any] struct {
	db *gorm.DB
}

var _ resolve.Repository[models.Product] = (*Store[models.Product])(nil)

// New returns a Store for model type M.
func New[M any](db *gorm.DB) *Store[M] {
	return &Store[M]{db: db}
}

// NewProductStore returns a Store for products.
func NewProductStore(db *gorm.DB) *Store[models.Product] {
	return New[models.Product](db)
}

// NewProjectStore returns a Store for projects.
func NewProjectStore(db *gorm.DB) *Store[models.Project] {
	return New[models.Project](db)
}

// FindByID returns the entity with the given UUID.
func (s *Store[M]) FindByID(ctx context.Context, id string) (*M, error) {
	// uuid.Parse also accepts braced, URN and unhyphenated forms, which are
	// not canonical references.
	if !entityref.IsCanonicalUUID(id) {
		return nil, nil
	}
	// Parsing lowercases the UUID, so the lookup does not depend on how the
	// database compares strings.
	return s.first(ctx, "uuid = ?", uuid.MustParse(id))
}

// FindBySlug returns the entity with the given slug.
func (s *Store[M]) FindBySlug(ctx context.Context, slug string) (*M, error) {
	return s.first(ctx, "slug = ?", slug)
}

// Create inserts a new entity.
func (s *Store[M]) Create(ctx context.Context, m *M) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("error creating record: %w", err)
	}
	return nil
}

// List returns all entities ordered by slug.
func (s *Store[M]) List(ctx context.Context) ([]M, error) {
	var ms []M
	if err := s.db.WithContext(ctx).
		Order("slug ASC").
		Find(&ms).
		Error; err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return ms, nil
}

func (s *Store[M]) first(ctx context.Context, query string, arg any) (*M, error) {
	var m M
	err := s.db.WithContext(ctx).
		Where(query, arg).
		First(&m).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding record: %w", err)
	}
	return &m, nil
}
