package pgstore

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hashicorp-forge/catalog/pkg/models"
)

const productColumns = "id, uuid::text, slug, name, abbreviation, description, attributes, created_at, updated_at"

const projectColumns = "id, uuid::text, slug, title, description, status, product_id, attributes, created_at, updated_at"

// NewProductReader returns a Reader for the products table.
func NewProductReader(q Querier) *Reader[models.Product] {
	return NewReader[models.Product](q, "products", productColumns, scanProduct)
}

// NewProjectReader returns a Reader for the projects table.
func NewProjectReader(q Querier) *Reader[models.Project] {
	return NewReader[models.Project](q, "projects", projectColumns, scanProject)
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		p            models.Product
		id           int64
		rawUUID      string
		abbreviation *string
		attributes   *string
	)
	if err := row.Scan(
		&id,
		&rawUUID,
		&p.Slug,
		&p.Name,
		&abbreviation,
		&p.Description,
		&attributes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.ID = uint(id)
	if abbreviation != nil {
		p.Abbreviation = *abbreviation
	}
	if err := finishScan(&p.UUID, rawUUID, &p.Attributes, attributes); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var (
		p          models.Project
		id         int64
		rawUUID    string
		productID  *int64
		attributes *string
	)
	if err := row.Scan(
		&id,
		&rawUUID,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Status,
		&productID,
		&attributes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.ID = uint(id)
	if productID != nil {
		pid := uint(*productID)
		p.ProductID = &pid
	}
	if err := finishScan(&p.UUID, rawUUID, &p.Attributes, attributes); err != nil {
		return nil, err
	}
	return &p, nil
}

func finishScan(dst *uuid.UUID, rawUUID string, attrs *models.Attributes, rawAttrs *string) error {
	parsed, err := uuid.Parse(rawUUID)
	if err != nil {
		return fmt.Errorf("invalid uuid in database: %w", err)
	}
	*dst = parsed

	if rawAttrs != nil {
		if err := attrs.Scan(*rawAttrs); err != nil {
			return err
		}
	}
	return nil
}
