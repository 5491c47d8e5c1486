package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog product. Products are addressed externally by either
// their UUID or their slug.
type Product struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// Identifiers
	UUID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	Slug string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`

	// Product metadata
	Name         string  `gorm:"not null;size:255" json:"name"`
	Abbreviation string  `gorm:"size:50" json:"abbreviation,omitempty"`
	Description  *string `json:"description,omitempty"`

	Attributes Attributes `gorm:"type:text" json:"attributes,omitempty"`

	// Timestamps
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// BeforeCreate hook to generate the product UUID and slug if not set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// Validate validates the product fields.
func (p *Product) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UUID, validation.By(notNilUUID)),
		validation.Field(&p.Slug,
			validation.Required,
			validation.Length(1, 255),
			validation.Match(slugPattern),
			validation.By(notUUIDShaped),
		),
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Abbreviation, validation.Length(0, 50)),
	)
}
