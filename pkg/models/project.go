package models

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a catalog project, optionally belonging to a product.
type Project struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// Identifiers
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`

	// Title is the display title for the project
	Title string `gorm:"not null;size:255" json:"title"`

	// Description is an optional description of the project
	Description *string `json:"description,omitempty"`

	// Status is the project status (active, archived, completed)
	Status string `gorm:"not null;default:'active';size:50" json:"status"`

	// ProductID links the project to its product, if any.
	ProductID *uint `json:"-"`

	Attributes Attributes `gorm:"type:text" json:"attributes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProjectStatus constants
const (
	ProjectStatusActive    = "active"
	ProjectStatusArchived  = "archived"
	ProjectStatusCompleted = "completed"
)

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate hook to generate the project UUID, slug and status if not set
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// Validate validates the project fields.
func (p *Project) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UUID, validation.By(notNilUUID)),
		validation.Field(&p.Slug,
			validation.Required,
			validation.Length(1, 255),
			validation.Match(slugPattern),
			validation.By(notUUIDShaped),
		),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Status,
			validation.Required,
			validation.In(
				ProjectStatusActive,
				ProjectStatusArchived,
				ProjectStatusCompleted,
			),
		),
	)
}

// Archive marks the project as archived.
func (p *Project) Archive(db *gorm.DB) error {
	if err := validation.Validate(p.ID, validation.Required); err != nil {
		return err
	}
	return db.Model(p).Update("status", ProjectStatusArchived).Error
}

var errNilUUID = errors.New("cannot be the nil UUID")

func notNilUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return errNilUUID
	}
	return nil
}
