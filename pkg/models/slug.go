package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/hashicorp-forge/catalog/pkg/entityref"
)

// slugPattern matches lowercase alphanumeric words joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// errSlugIsUUID is returned for slugs that would be classified as UUIDs and so
// could never be resolved by slug.
var errSlugIsUUID = errors.New("must not be a UUID")

// Slugify derives a slug from a display name, e.g.
// "Terraform Enterprise" -> "terraform-enterprise".
func Slugify(name string) string {
	s := strcase.ToKebab(strings.TrimSpace(name))
	s = slugInvalidChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// notUUIDShaped is an ozzo-validation rule for slug fields.
func notUUIDShaped(value interface{}) error {
	s, _ := value.(string)
	if entityref.Detect(s) == entityref.KindUUID {
		return errSlugIsUUID
	}
	return nil
}
